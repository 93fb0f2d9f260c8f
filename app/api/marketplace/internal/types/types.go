// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Id           string `json:"id"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	CsrfToken    string `json:"csrfToken"`
}

type CreatePaymentRequest struct {
	Amount      float64 `json:"amount"`
	PaymentMode string  `json:"paymentMode"`
	OfferId     string  `json:"offerId,optional"`
}

type CreatePaymentResponse struct {
	TxnId     string `json:"txnId"`
	Status    string `json:"status"`
	CsrfToken string `json:"csrfToken"`
}

type CartItem struct {
	Id   string `json:"_id"`
	Unit int    `json:"unit"`
}

type CreateOrderRequest struct {
	TxnId     string     `json:"txnId"`
	Amount    float64    `json:"amount"`
	Items     []CartItem `json:"items"`
	Locations LatLng     `json:"locations"`
}

type OrderItemView struct {
	FoodId    string  `json:"foodId"`
	VendorId  string  `json:"vendorId"`
	UnitPrice float64 `json:"unitPrice"`
	Unit      int     `json:"unit"`
}

type OrderView struct {
	Id          string          `json:"id"`
	OrderId     string          `json:"orderId"`
	VendorIds   []string        `json:"vendorId"`
	Items       []OrderItemView `json:"items"`
	TotalAmount float64         `json:"totalAmount"`
	PaidAmount  float64         `json:"paidAmount"`
	OrderStatus string          `json:"orderStatus"`
	DeliveryId  string          `json:"deliveryId"`
	ReadyTime   int             `json:"readyTime"`
	Locations   LatLng          `json:"locations"`
}

type CreateOrderResponse struct {
	Orders    OrderView `json:"orders"`
	CsrfToken string    `json:"csrfToken"`
}

type ListOrdersResponse struct {
	Orders    []OrderView `json:"orders"`
	CsrfToken string      `json:"csrfToken"`
}

type GetOrderRequest struct {
	Id string `path:"id"`
}

type GetOrderResponse struct {
	Order     OrderView `json:"order"`
	CsrfToken string    `json:"csrfToken"`
}
