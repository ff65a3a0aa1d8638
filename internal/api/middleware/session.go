package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grandline/theories/internal/core/domain"
	"github.com/grandline/theories/internal/core/ports"
)

// SessionCookie is the name of the client-held cookie carrying the signed
// current-user token.
const SessionCookie = "session"

// Session verifies the session cookie on every request and injects the
// authenticated username into the request context. Requests without a valid
// token proceed anonymously; nothing is rejected here.
func Session(sessions ports.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
				if username, err := sessions.Verify(ck.Value); err == nil {
					c.Set("username", username)
				}
			}
			return next(c)
		}
	}
}

// RequireSession guards routes that need an authenticated user. Anonymous
// requests surface domain.ErrUnauthenticated, which the central error handler
// turns into a login redirect instead of a fault.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if username, _ := c.Get("username").(string); username == "" {
			return domain.ErrUnauthenticated
		}
		return next(c)
	}
}

// SetSessionCookie attaches the signed token to the response.
func SetSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie. Safe to call when no
// session exists.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
