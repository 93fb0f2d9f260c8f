package biz

import "time"

type CtxKey string

const (
	USER_KEY      CtxKey = "user_id"
	TOKEN_KEY     CtxKey = "access_token"
	TOKEN_EXP_KEY CtxKey = "access_token_exp"

	TokenExpire        = time.Minute * 30
	TokenRenewalExpire = time.Hour * 24 * 10
	CsrfExpire         = time.Hour * 24 * 10

	REFRESHTOKEN = "refresh_token"
	ACCESSTOKEN  = "access_token"

	CsrfHeader = "X-Xsrf-Token"
	CsrfQuery  = "_csrf"

	// redis key prefix for rejected bearer tokens
	DenyListPrefix = "bl_"
)
