package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gazette-dev/gazette/internal/api/middleware"
	"github.com/gazette-dev/gazette/internal/core/domain"
	"github.com/gazette-dev/gazette/internal/core/ports"
)

// SessionSettings controls the session cookie written at login.
type SessionSettings struct {
	MaxAge time.Duration
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	session     SessionSettings
}

func NewAuthHandler(authService ports.AuthService, session SessionSettings) *AuthHandler {
	return &AuthHandler{authService: authService, session: session}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
	Confirm  string `json:"confirm" validate:"required"`
}

type whoamiResponse struct {
	Authenticated bool            `json:"authenticated"`
	Username      string          `json:"username,omitempty"`
	Roles         []domain.RoleID `json:"roles"`
	CanWrite      bool            `json:"can_write"`
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  msgResponse
// @Failure      400   {object}  msgResponse
// @Failure      401   {object}  msgResponse
// @Failure      503   {object}  msgResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), domain.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	c.SetCookie(middleware.SessionCookie(res.Token, h.session.MaxAge, h.session.Secure))
	return c.JSON(http.StatusOK, msgResponse{Msg: res.Message})
}

// Register creates a pending account and emails its confirmation link.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  msgResponse
// @Failure      400   {object}  msgResponse
// @Failure      401   {object}  msgResponse
// @Failure      502   {object}  msgResponse  "account created, email not sent"
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	msg, err := h.authService.Register(c.Request().Context(), domain.RegisterRequest{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.Confirm,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msgResponse{Msg: msg})
}

// Confirm activates the account behind an invitation token.
//
// @Summary      Confirm an account
// @Tags         auth
// @Produce      json
// @Param        token  path      string  true  "Invitation token from the confirmation email"
// @Success      200    {object}  msgResponse
// @Failure      401    {object}  msgResponse
// @Router       /api/confirm/{token} [get]
func (h *AuthHandler) Confirm(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "token is required"})
	}

	msg, err := h.authService.Confirm(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgResponse{Msg: msg})
}

// Logout clears the session cookie. Sessions are stateless, so there is
// nothing to revoke server side.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  msgResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(middleware.ClearedSessionCookie(h.session.Secure))
	return c.JSON(http.StatusOK, msgResponse{Msg: "Logged out"})
}

// Whoami describes the caller's session.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  whoamiResponse
// @Router       /api/whoami [get]
func (h *AuthHandler) Whoami(c echo.Context) error {
	id := identity(c)
	p, ok := id.Principal()
	if !ok {
		return c.JSON(http.StatusOK, whoamiResponse{Roles: roleList(nil)})
	}
	return c.JSON(http.StatusOK, whoamiResponse{
		Authenticated: true,
		Username:      p.Username,
		Roles:         roleList(p.Roles),
		CanWrite:      domain.CanAuthor(id),
	})
}
