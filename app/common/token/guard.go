package token

import (
	"context"
	stderrors "errors"
	"math/big"
	"strings"
	"time"

	"Savora/app/common/consts/biz"
	"Savora/app/common/consts/errno"

	"github.com/golang-jwt/jwt/v4"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/x/errors"
)

const csrfByteSize = 64

type Config struct {
	RefreshSecret string
	// CsrfSecret is the shared hex secret XOR-combined with anti-forgery
	// values on the wire, so the raw stored value never leaves the server.
	CsrfSecret    string
	AccessExpire  time.Duration `json:",default=30m"`
	RefreshExpire time.Duration `json:",default=240h"`
	CsrfExpire    time.Duration `json:",default=240h"`
}

type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Guard issues and verifies the paired credentials every authorized request
// carries: a signed bearer token and a server-side anti-forgery value stored
// under the bearer token with a TTL. Each anti-forgery issuance overwrites
// the previous one, so only the most recently issued value verifies; older
// concurrent requests racing on the same bearer token fail verification by
// design.
type Guard struct {
	conf          Config
	keys          KeyProvider
	cache         *redis.Redis
	refreshSecret []byte
	csrfSecret    *big.Int
}

func NewGuard(c Config, keys KeyProvider, cache *redis.Redis) (*Guard, error) {
	if c.RefreshSecret == "" {
		return nil, stderrors.New("token: refresh secret is empty")
	}
	secret, ok := parseHexValue(c.CsrfSecret)
	if !ok {
		return nil, stderrors.New("token: csrf secret must be a hex string")
	}
	if c.AccessExpire <= 0 {
		c.AccessExpire = biz.TokenExpire
	}
	if c.RefreshExpire <= 0 {
		c.RefreshExpire = biz.TokenRenewalExpire
	}
	if c.CsrfExpire <= 0 {
		c.CsrfExpire = biz.CsrfExpire
	}
	return &Guard{
		conf:          c,
		keys:          keys,
		cache:         cache,
		refreshSecret: []byte(c.RefreshSecret),
		csrfSecret:    secret,
	}, nil
}

func MustNewGuard(c Config, keys KeyProvider, cache *redis.Redis) *Guard {
	g, err := NewGuard(c, keys, cache)
	if err != nil {
		panic(err)
	}
	return g
}

// Keys exposes the provider so the rotation task can swap the active secret.
func (g *Guard) Keys() KeyProvider { return g.keys }

func (g *Guard) IssueBearer(userID, email string) (string, time.Time, error) {
	secret, _ := g.keys.Active()
	return signToken(secret, g.conf.AccessExpire, userID, email)
}

func (g *Guard) VerifyBearer(tokenStr string) (*Claims, error) {
	secret, _ := g.keys.Active()
	return parseToken(tokenStr, secret)
}

func (g *Guard) IssueRefresh(userID string) (string, time.Time, error) {
	return signToken(g.refreshSecret, g.conf.RefreshExpire, userID, "")
}

func (g *Guard) VerifyRefresh(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, g.refreshSecret)
}

// IsDenied reports whether the bearer token sits on the deny-list.
func (g *Guard) IsDenied(ctx context.Context, bearer string) (bool, error) {
	val, err := g.cache.GetCtx(ctx, biz.DenyListPrefix+bearer)
	if err != nil {
		return false, err
	}
	return val != "", nil
}

// IssueAntiForgery stores a fresh high-entropy value under the bearer token,
// overwriting any prior value, and returns the wire form (value XOR secret,
// hex). The TTL follows the bearer token's remaining lifetime when a hint is
// given, the configured default otherwise.
func (g *Guard) IssueAntiForgery(ctx context.Context, bearer string, ttlHint time.Time) (string, error) {
	if bearer == "" {
		return "", errors.New(errno.TokenEmpty, "the access token is not found")
	}
	value := new(big.Int).SetBytes(randomBytes(csrfByteSize))
	ttl := g.csrfTTL(ttlHint)
	if err := g.cache.SetexCtx(ctx, bearer, value.String(), int(ttl.Seconds())); err != nil {
		return "", err
	}
	wire := new(big.Int).Xor(value, g.csrfSecret)
	return "0x" + wire.Text(16), nil
}

// VerifyAntiForgery recomputes stored == supplied XOR secret over big
// integers. A missing bearer token or cache entry is an authentication
// failure, never a pass.
func (g *Guard) VerifyAntiForgery(ctx context.Context, bearer, supplied string) error {
	if bearer == "" {
		return errors.New(errno.TokenEmpty, "the access token is not found")
	}
	if supplied == "" {
		return errors.New(errno.CsrfTokenEmpty, "the csrf token is not found")
	}
	stored, err := g.cache.GetCtx(ctx, bearer)
	if err != nil {
		return err
	}
	if stored == "" {
		return errors.New(errno.CsrfTokenInvalid, "unauthorized")
	}
	suppliedInt, ok := parseHexValue(supplied)
	if !ok {
		return errors.New(errno.CsrfTokenInvalid, "the csrf token must be a hex string")
	}
	storedInt, ok := new(big.Int).SetString(stored, 10)
	if !ok {
		return errors.New(errno.CsrfTokenInvalid, "unauthorized")
	}
	if new(big.Int).Xor(suppliedInt, g.csrfSecret).Cmp(storedInt) != 0 {
		return errors.New(errno.CsrfTokenInvalid, "unauthorized token")
	}
	return nil
}

// CurrentAntiForgery snapshots the stored value and its remaining TTL so a
// saga can register a compensation restoring it. An absent entry returns an
// empty value, not an error.
func (g *Guard) CurrentAntiForgery(ctx context.Context, bearer string) (string, time.Duration, error) {
	stored, err := g.cache.GetCtx(ctx, bearer)
	if err != nil || stored == "" {
		return "", 0, err
	}
	secs, err := g.cache.TtlCtx(ctx, bearer)
	if err != nil {
		return "", 0, err
	}
	if secs <= 0 {
		return stored, g.conf.CsrfExpire, nil
	}
	return stored, time.Duration(secs) * time.Second, nil
}

// RestoreAntiForgery puts a snapshotted value back, or removes the entry when
// the snapshot was empty.
func (g *Guard) RestoreAntiForgery(ctx context.Context, bearer, value string, ttl time.Duration) error {
	if value == "" {
		_, err := g.cache.DelCtx(ctx, bearer)
		return err
	}
	if ttl <= 0 {
		ttl = g.conf.CsrfExpire
	}
	return g.cache.SetexCtx(ctx, bearer, value, int(ttl.Seconds()))
}

func (g *Guard) csrfTTL(hint time.Time) time.Duration {
	if !hint.IsZero() {
		if remaining := time.Until(hint); remaining > 0 {
			return remaining
		}
	}
	return g.conf.CsrfExpire
}

func signToken(secret []byte, ttl time.Duration, userID, email string) (string, time.Time, error) {
	if len(secret) == 0 {
		return "", time.Time{}, stderrors.New("token secret is empty")
	}
	if ttl <= 0 {
		return "", time.Time{}, stderrors.New("token ttl must be positive")
	}

	now := time.Now()
	expireAt := now.Add(ttl)
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expireAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expireAt, nil
}

func parseToken(tokenStr string, secret []byte) (*Claims, error) {
	if tokenStr == "" {
		return nil, errors.New(errno.TokenEmpty, "token is empty")
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, stderrors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New(errno.AccessTokenExpired, "token expired")
		}
		return nil, errors.New(errno.TokenRejected, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New(errno.TokenRejected, "invalid token claims")
	}
	return claims, nil
}

func parseHexValue(s string) (*big.Int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return nil, false
	}
	v, ok := new(big.Int).SetString(s, 16)
	return v, ok
}
