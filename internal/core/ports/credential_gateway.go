package ports

import (
	"context"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

// CredentialGateway runs the datastore's authentication procedures. Business
// rejections come back as *domain.AuthenticationError, pool exhaustion as
// *domain.PoolError and malformed calls as *domain.QueryError.
type CredentialGateway interface {
	// Authenticate returns the principal and the datastore's message.
	Authenticate(ctx context.Context, req domain.LoginRequest) (domain.Principal, string, error)
	// Register creates a pending account and returns its invitation token.
	Register(ctx context.Context, req domain.RegisterRequest) (string, error)
	// Confirm activates the account behind an invitation token.
	Confirm(ctx context.Context, token string) (string, error)
}
