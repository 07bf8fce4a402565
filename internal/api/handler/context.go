package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gazette-dev/gazette/internal/api/middleware"
	"github.com/gazette-dev/gazette/internal/core/domain"
)

// msgResponse is the body of every auth endpoint response.
type msgResponse struct {
	Msg string `json:"msg"`
}

// identity returns the caller's identity as decoded by the Identity middleware.
func identity(c echo.Context) domain.Identity {
	return middleware.IdentityFrom(c)
}

// roleList keeps the JSON shape of a role list stable: never null.
func roleList(roles []domain.RoleID) []domain.RoleID {
	if roles == nil {
		return []domain.RoleID{}
	}
	return roles
}

// bindAndValidate decodes the JSON body into req and validates it. On
// failure it writes the 400 response itself and reports false.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, msgResponse{Msg: "invalid payload"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, msgResponse{Msg: err.Error()})
	}
	return true, nil
}
