package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

// RequireCapability enforces role-based access control. Anonymous callers
// get 401, signed-in callers without a granting role get 403. Must run after
// Identity.
func RequireCapability(capability domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityFrom(c)
			if id.IsAnonymous() {
				return c.JSON(http.StatusUnauthorized, map[string]string{"msg": "authentication required"})
			}
			if !domain.HasCapability(id, capability) {
				return c.JSON(http.StatusForbidden, map[string]string{"msg": "access forbidden"})
			}
			return next(c)
		}
	}
}
