// Package migrations bootstraps the gazette schema: tables, seed roles and
// the authenticate/register/confirm procedures the credential gateway calls.
//
// Each migration registers itself from an init func; versions are applied in
// lexical order inside a single transaction and recorded in
// metadata.schema_migrations.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

type migration struct {
	version string
	name    string
	up      func(*sqlx.Tx) error
}

var registry = map[string]*migration{}

func addMigration(mg *migration) {
	if _, dup := registry[mg.version]; dup {
		panic(fmt.Sprintf("migrations: duplicate version %s", mg.version))
	}
	registry[mg.version] = mg
}

// Status reports whether a migration has been applied.
type Status struct {
	Version string
	Name    string
	Applied bool
}

// Migrator applies registered migrations to a database.
type Migrator struct {
	db  *sqlx.DB
	log zerolog.Logger
}

func NewMigrator(db *sqlx.DB, log zerolog.Logger) *Migrator {
	return &Migrator{db: db, log: log}
}

func versions() []string {
	vs := make([]string, 0, len(registry))
	for v := range registry {
		vs = append(vs, v)
	}
	slices.Sort(vs)
	return vs
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, `CREATE SCHEMA IF NOT EXISTS metadata`); err != nil {
		return fmt.Errorf("create metadata schema: %w", err)
	}
	if _, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS metadata.schema_migrations (
		version varchar(255) PRIMARY KEY
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	var done []string
	if err := m.db.SelectContext(ctx, &done, `SELECT version FROM metadata.schema_migrations`); err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	out := make(map[string]bool, len(done))
	for _, v := range done {
		out[v] = true
	}
	return out, nil
}

// Status lists every registered migration in order.
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	done, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(registry))
	for _, v := range versions() {
		out = append(out, Status{Version: v, Name: registry[v].name, Applied: done[v]})
	}
	return out, nil
}

// Up applies all pending migrations. Either all of them are applied or none.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}
	done, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	count := 0
	for _, v := range versions() {
		if done[v] {
			continue
		}
		mg := registry[v]
		l := m.log.With().Str("version", v).Str("name", mg.name).Logger()

		l.Info().Msg("running up migration")
		if err := mg.up(tx); err != nil {
			return 0, fmt.Errorf("migration %s_%s: %w", v, mg.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO metadata.schema_migrations (version) VALUES ($1)`, v); err != nil {
			return 0, fmt.Errorf("record migration %s: %w", v, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit migrations: %w", err)
	}
	return count, nil
}

// execAll runs statements in order on tx.
func execAll(tx *sqlx.Tx, stmts ...string) error {
	for _, s := range stmts {
		if _, err := tx.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
