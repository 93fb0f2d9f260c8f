package errno

const (
	StatusOK = 10000
)

// authentication
const (
	TokenEmpty = 40000 + iota
	AccessTokenExpired
	RefreshTokenExpired
	TokenRejected
	CsrfTokenEmpty
	CsrfTokenInvalid
)

// validation and lookups
const (
	InternalError = 50000 + iota
	InvalidParam
	CustomerAlreadyExists
	CustomerNotFound
	InvalidCredentials
	FoodNotFound
	OrderNotFound
	TransactionNotFound
	TransactionFailed
)

// resources
const (
	NoCourierAvailable = 60000 + iota
)
