package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ReadinessChecker reports whether the schema bootstrap has completed.
type ReadinessChecker interface {
	Ready() bool
}

// RequireReady answers 503 until the schema is ready, closing the window
// where requests could hit a half-migrated database during startup.
func RequireReady(state ReadinessChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !state.Ready() {
				c.Response().Header().Set("Retry-After", "5")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"msg": "service is starting up, please retry shortly"})
			}
			return next(c)
		}
	}
}
