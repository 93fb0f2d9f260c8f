package response

// Response is the error body every endpoint renders: a business code plus a
// human-readable message. Successful endpoints return their own typed bodies.
type Response struct {
	StatusCode int    `json:"code"`
	StatusMsg  string `json:"msg"`
}

func NewResponse(statusCode int, statusMsg string) Response {
	return Response{
		StatusCode: statusCode,
		StatusMsg:  statusMsg,
	}
}
