package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultAcquireTimeout = 5 * time.Second
)

// Config captures the settings for the PostgreSQL connection pool.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Timeout         time.Duration
}

// Connect opens the pool and verifies connectivity with a ping. A default
// timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// Pool scopes datastore access to one connection per logical operation.
// Waiting for a connection is bounded; the operation itself is not.
type Pool struct {
	db             *sqlx.DB
	acquireTimeout time.Duration
}

func NewPool(db *sqlx.DB, acquireTimeout time.Duration) *Pool {
	if acquireTimeout <= 0 {
		acquireTimeout = defaultAcquireTimeout
	}
	return &Pool{db: db, acquireTimeout: acquireTimeout}
}

// WithConn checks out a connection, runs op on it and checks it back in.
// A connection that cannot be acquired within the timeout yields a
// *domain.PoolError. op runs on a context detached from ctx's cancellation:
// a client disconnect does not abort a call already handed to the datastore.
func (p *Pool) WithConn(ctx context.Context, op string, fn func(ctx context.Context, conn *sqlx.Conn) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	conn, err := p.db.Connx(acquireCtx)
	cancel()
	if err != nil {
		return &domain.PoolError{Err: fmt.Errorf("%s: %w", op, err)}
	}
	defer conn.Close()

	if err := fn(context.WithoutCancel(ctx), conn); err != nil {
		return classify(op, err)
	}
	return nil
}

// DB exposes the underlying pool for health checks and migrations.
func (p *Pool) DB() *sqlx.DB {
	return p.db
}

// classify maps a failure of an acquired connection onto the domain taxonomy.
// Errors that are already typed pass through unchanged.
func classify(op string, err error) error {
	var (
		ae *domain.AuthenticationError
		pe *domain.PoolError
		qe *domain.QueryError
	)
	if errors.As(err, &ae) || errors.As(err, &pe) || errors.As(err, &qe) || errors.Is(err, domain.ErrArticleNotFound) {
		return err
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return &domain.PoolError{Err: fmt.Errorf("%s: %w", op, err)}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" {
		return &domain.PoolError{Err: fmt.Errorf("%s: %w", op, err)}
	}
	return &domain.QueryError{Op: op, Err: err}
}
