package response

import (
	"context"
	stderrors "errors"
	"net/http"

	"Savora/app/common/consts/errno"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/x/errors"
)

// Handler renders coded errors as {code,msg} bodies with a matching HTTP
// status. Anything without a code is flattened to a generic 500 unless the
// service runs in dev/test mode.
func Handler(mode string) func(ctx context.Context, err error) (int, any) {
	return func(ctx context.Context, err error) (int, any) {
		var cm *errors.CodeMsg
		if stderrors.As(err, &cm) {
			return httpStatus(cm.Code), NewResponse(cm.Code, cm.Msg)
		}

		logx.WithContext(ctx).Errorf("unhandled error: %v", err)
		if mode == service.DevMode || mode == service.TestMode {
			return http.StatusInternalServerError, NewResponse(errno.InternalError, err.Error())
		}
		return http.StatusInternalServerError, NewResponse(errno.InternalError, "internal server error")
	}
}

func httpStatus(code int) int {
	switch code {
	case errno.TokenEmpty, errno.AccessTokenExpired, errno.RefreshTokenExpired,
		errno.TokenRejected, errno.CsrfTokenEmpty, errno.CsrfTokenInvalid,
		errno.InvalidCredentials:
		return http.StatusUnauthorized
	case errno.NoCourierAvailable:
		return http.StatusForbidden
	case errno.CustomerNotFound, errno.OrderNotFound, errno.TransactionNotFound:
		return http.StatusNotFound
	case errno.CustomerAlreadyExists:
		return http.StatusConflict
	case errno.InvalidParam, errno.FoodNotFound, errno.TransactionFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
