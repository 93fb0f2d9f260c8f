package util

import (
	"context"
	"time"

	"Savora/app/common/consts/biz"
	"Savora/app/common/consts/errno"

	"github.com/zeromicro/x/errors"
)

func UserIdFromCtx(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", errors.New(int(errno.TokenEmpty), "missing context")
	}

	switch val := ctx.Value(biz.USER_KEY).(type) {
	case string:
		if val != "" {
			return val, nil
		}
	}

	return "", errors.New(int(errno.TokenEmpty), "unauthorized")
}

func TokenFromCtx(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", errors.New(int(errno.TokenEmpty), "missing context")
	}

	switch val := ctx.Value(biz.TOKEN_KEY).(type) {
	case string:
		if val != "" {
			return val, nil
		}
	}

	return "", errors.New(int(errno.TokenEmpty), "unauthorized")
}

// TokenExpiryFromCtx returns the bearer token's expiry when the middleware
// recorded it, the zero time otherwise.
func TokenExpiryFromCtx(ctx context.Context) time.Time {
	if ctx == nil {
		return time.Time{}
	}
	if val, ok := ctx.Value(biz.TOKEN_EXP_KEY).(time.Time); ok {
		return val
	}
	return time.Time{}
}
