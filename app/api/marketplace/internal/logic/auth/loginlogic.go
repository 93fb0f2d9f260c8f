// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package auth

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"Savora/app/api/marketplace/internal/svc"
	"Savora/app/api/marketplace/internal/types"
	"Savora/app/common/consts/errno"
	customerdal "Savora/app/dal/customer"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
	"golang.org/x/crypto/bcrypt"
)

type LoginLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewLoginLogic(ctx context.Context, svcCtx *svc.ServiceContext) *LoginLogic {
	return &LoginLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Login checks the credentials and issues the full credential set: bearer
// token, refresh token and the anti-forgery value bound to the bearer token.
func (l *LoginLogic) Login(req *types.LoginRequest) (*types.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, errors.New(int(errno.InvalidParam), "email and password are required")
	}

	profile, err := l.svcCtx.Customers.FindOneByEmail(l.ctx, email)
	if stderrors.Is(err, customerdal.ErrNotFound) {
		return nil, errors.New(int(errno.InvalidCredentials), "invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
		return nil, errors.New(int(errno.InvalidCredentials), "invalid email or password")
	}

	uid := profile.ID.Hex()
	accessToken, accessExpireAt, err := l.svcCtx.Guard.IssueBearer(uid, profile.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpireAt, err := l.svcCtx.Guard.IssueRefresh(uid)
	if err != nil {
		return nil, err
	}
	// the anti-forgery entry lives as long as the session can be refreshed
	csrfToken, err := l.svcCtx.Guard.IssueAntiForgery(l.ctx, accessToken, refreshExpireAt)
	if err != nil {
		return nil, err
	}

	return &types.LoginResponse{
		Id:           uid,
		Email:        profile.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(time.Until(accessExpireAt).Seconds()),
		CsrfToken:    csrfToken,
	}, nil
}
