package session_cookie

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"auth-api/pkg/config"
	"auth-api/pkg/jwt_generator"
)

const (
	AccessTokenCookieName  = "accessToken"
	RefreshTokenCookieName = "refreshToken"
)

type Writer interface {
	SetSessionCookies(ctx *fiber.Ctx, tokens *jwt_generator.Tokens)
	SetAccessTokenCookie(ctx *fiber.Ctx, accessToken string)
	ClearSessionCookies(ctx *fiber.Ctx)
}

type writer struct {
	secure               bool
	accessTokenLifetime  time.Duration
	refreshTokenLifetime time.Duration
}

func NewWriter(cfg *config.Config) Writer {
	accessTokenLifetime := cfg.Jwt.AccessTokenLifetime
	if accessTokenLifetime <= 0 {
		accessTokenLifetime = config.AccessTokenLifetime
	}

	refreshTokenLifetime := cfg.Jwt.RefreshTokenLifetime
	if refreshTokenLifetime <= 0 {
		refreshTokenLifetime = config.RefreshTokenLifetime
	}

	return &writer{
		secure:               cfg.IsProduction(),
		accessTokenLifetime:  accessTokenLifetime,
		refreshTokenLifetime: refreshTokenLifetime,
	}
}

func (w *writer) SetSessionCookies(ctx *fiber.Ctx, tokens *jwt_generator.Tokens) {
	w.SetAccessTokenCookie(ctx, tokens.AccessToken)
	ctx.Cookie(w.newCookie(RefreshTokenCookieName, tokens.RefreshToken, w.refreshTokenLifetime))
}

func (w *writer) SetAccessTokenCookie(ctx *fiber.Ctx, accessToken string) {
	ctx.Cookie(w.newCookie(AccessTokenCookieName, accessToken, w.accessTokenLifetime))
}

// ClearSessionCookies expires both cookies with the attributes they were set
// with, browsers ignore a deletion whose attributes do not match.
func (w *writer) ClearSessionCookies(ctx *fiber.Ctx) {
	for _, name := range []string{AccessTokenCookieName, RefreshTokenCookieName} {
		cookie := w.newCookie(name, "", 0)
		cookie.Expires = time.Unix(0, 0).UTC()
		ctx.Cookie(cookie)
	}
}

func (w *writer) newCookie(name, value string, lifetime time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		Secure:   w.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}
