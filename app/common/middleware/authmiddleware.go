// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package middleware

import (
	"context"
	"net/http"
	"strings"

	"Savora/app/common/consts/biz"
	"Savora/app/common/consts/errno"
	"Savora/app/common/token"

	"github.com/zeromicro/go-zero/rest/httpx"
	"github.com/zeromicro/x/errors"
)

type AuthMiddleware struct {
	Guard *token.Guard
}

func NewAuthMiddleware(guard *token.Guard) *AuthMiddleware {
	return &AuthMiddleware{
		Guard: guard,
	}
}

// Handle authenticates the request with a bearer token plus the matching
// anti-forgery value before any handler runs. Both credentials must pass;
// user id, token and expiry are injected into the request context for the
// logic layer.
func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken := bearerFromRequest(r)
		if accessToken == "" {
			httpx.ErrorCtx(r.Context(), w, errors.New(int(errno.TokenEmpty), "no access token provided"))
			return
		}

		csrfToken := r.Header.Get(biz.CsrfHeader)
		if csrfToken == "" {
			csrfToken = r.URL.Query().Get(biz.CsrfQuery)
		}

		denied, err := m.Guard.IsDenied(r.Context(), accessToken)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		if denied {
			httpx.ErrorCtx(r.Context(), w, errors.New(int(errno.TokenRejected), "jwt rejected"))
			return
		}

		claims, err := m.Guard.VerifyBearer(accessToken)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		if err := m.Guard.VerifyAntiForgery(r.Context(), accessToken, csrfToken); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		ctx := context.WithValue(r.Context(), biz.USER_KEY, claims.UserID)
		ctx = context.WithValue(ctx, biz.TOKEN_KEY, accessToken)
		if claims.ExpiresAt != nil {
			ctx = context.WithValue(ctx, biz.TOKEN_EXP_KEY, claims.ExpiresAt.Time)
		}
		next(w, r.WithContext(ctx))
	}
}

func bearerFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := r.Cookie(biz.ACCESSTOKEN); err == nil {
		return cookie.Value
	}
	return ""
}
