package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

const (
	msgUnavailable = "service temporarily unavailable, please retry"
	msgInternal    = "internal server error"
	msgDispatch    = "account created, but the confirmation email could not be sent"
)

// msgResponse is the envelope for every API error: {"msg": "<message>"}.
type msgResponse struct {
	Msg string `json:"msg"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps datastore rejections and domain errors to their HTTP status codes.
//   - Logs infrastructure failures without leaking their details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, msgResponse{Msg: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var (
		ae *domain.AuthenticationError
		pe *domain.PoolError
		qe *domain.QueryError
		de *domain.DispatchError
	)
	switch {
	case errors.As(err, &ae):
		return http.StatusUnauthorized, ae.Message
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrArticleNotFound):
		return http.StatusNotFound, "article not found"
	case errors.As(err, &de):
		// Already logged by the auth service with the username.
		return http.StatusBadGateway, msgDispatch
	case errors.As(err, &pe):
		logFailure(log, c, err, "datastore unavailable")
		return http.StatusServiceUnavailable, msgUnavailable
	case errors.As(err, &qe):
		logFailure(log, c, err, "datastore query failed")
		return http.StatusInternalServerError, msgInternal
	}

	logFailure(log, c, err, "unhandled error")
	return http.StatusInternalServerError, msgInternal
}

func logFailure(log zerolog.Logger, c echo.Context, err error, msg string) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg(msg)
}
