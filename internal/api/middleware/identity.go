package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gazette-dev/gazette/internal/core/domain"
	"github.com/gazette-dev/gazette/internal/core/ports"
)

// CookieName is the session cookie carrying the signed principal.
const CookieName = "auth-cookie"

const identityKey = "identity"

// Identity decodes the session cookie and injects the caller's identity into
// context. A missing or invalid cookie yields an anonymous identity; it never
// fails the request.
func Identity(codec ports.SessionCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := domain.Anonymous()
			if ck, err := c.Cookie(CookieName); err == nil {
				id = codec.Decode(ck.Value)
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity injected by Identity, or anonymous.
func IdentityFrom(c echo.Context) domain.Identity {
	id, _ := c.Get(identityKey).(domain.Identity)
	return id
}

// SessionCookie wraps a session token for the browser.
func SessionCookie(token string, maxAge time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearedSessionCookie instructs the browser to drop the session cookie.
func ClearedSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
