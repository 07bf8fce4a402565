package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

const (
	authenticateQuery = `SELECT success, message, roles FROM authenticate($1, $2)`
	registerQuery     = `SELECT success, message, invitation FROM register($1, $2, $3)`
	confirmQuery      = `SELECT success, message FROM confirm($1)`

	defaultRejection = "authentication failed"
)

var errNoInvitation = errors.New("register reported success without an invitation")

// procResult is the row shape shared by the authentication procedures.
// Columns a procedure does not return stay at their zero value.
type procResult struct {
	Success    bool           `db:"success"`
	Message    sql.NullString `db:"message"`
	Roles      pq.Int64Array  `db:"roles"`
	Invitation sql.NullString `db:"invitation"`
}

// CredentialGateway runs the authenticate, register and confirm procedures.
// Password hashing, uniqueness checks and invitation codes are owned by the
// datastore.
type CredentialGateway struct {
	pool *Pool
	log  zerolog.Logger
}

func NewCredentialGateway(pool *Pool, log zerolog.Logger) *CredentialGateway {
	return &CredentialGateway{pool: pool, log: log}
}

func (g *CredentialGateway) Authenticate(ctx context.Context, req domain.LoginRequest) (domain.Principal, string, error) {
	var res procResult
	err := g.pool.WithConn(ctx, "authenticate", func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &res, authenticateQuery, req.Username, req.Password)
	})
	if err != nil {
		return domain.Principal{}, "", err
	}
	return g.principalFrom(req.Username, res)
}

func (g *CredentialGateway) Register(ctx context.Context, req domain.RegisterRequest) (string, error) {
	var res procResult
	err := g.pool.WithConn(ctx, "register", func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &res, registerQuery, req.Username, req.Password, req.ConfirmPassword)
	})
	if err != nil {
		return "", err
	}
	return invitationFrom(res)
}

func (g *CredentialGateway) Confirm(ctx context.Context, token string) (string, error) {
	var res procResult
	err := g.pool.WithConn(ctx, "confirm", func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &res, confirmQuery, token)
	})
	if err != nil {
		return "", err
	}
	if !res.Success {
		return "", rejection(res)
	}
	return res.Message.String, nil
}

// principalFrom builds the principal for a successful authenticate row.
// Role ids the application does not know are dropped.
func (g *CredentialGateway) principalFrom(username string, res procResult) (domain.Principal, string, error) {
	if !res.Success {
		return domain.Principal{}, "", rejection(res)
	}

	roles := make([]domain.RoleID, 0, len(res.Roles))
	for _, id := range res.Roles {
		r := domain.RoleID(id)
		if !r.Valid() {
			g.log.Warn().Int64("role_id", id).Str("username", username).Msg("ignoring unknown role")
			continue
		}
		roles = append(roles, r)
	}
	return domain.NewPrincipal(username, roles), res.Message.String, nil
}

func invitationFrom(res procResult) (string, error) {
	if !res.Success {
		return "", rejection(res)
	}
	if !res.Invitation.Valid || res.Invitation.String == "" {
		return "", &domain.QueryError{Op: "register", Err: errNoInvitation}
	}
	return res.Invitation.String, nil
}

// rejection carries the datastore's reason as given, without adding detail.
func rejection(res procResult) error {
	msg := res.Message.String
	if msg == "" {
		msg = defaultRejection
	}
	return &domain.AuthenticationError{Message: msg}
}
