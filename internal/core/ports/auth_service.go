package ports

import (
	"context"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

// LoginResult is returned by AuthService.Login.
type LoginResult struct {
	Principal domain.Principal
	Token     string
	Message   string
}

type AuthService interface {
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	Register(ctx context.Context, req domain.RegisterRequest) (string, error)
	Confirm(ctx context.Context, token string) (string, error)
}

// SessionCodec turns principals into signed session tokens and back.
type SessionCodec interface {
	Encode(p domain.Principal) string
	Decode(token string) domain.Identity
}
