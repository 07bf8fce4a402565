package migrations

import "github.com/jmoiron/sqlx"

func init() {
	addMigration(&migration{
		version: "20240301090000",
		name:    "users",
		up:      mig_20240301090000_users_up,
	})
}

func mig_20240301090000_users_up(tx *sqlx.Tx) error {
	return execAll(tx,
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		`CREATE TABLE IF NOT EXISTS users (
			id            SERIAL PRIMARY KEY,
			username      VARCHAR(255) NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			display_name  VARCHAR(255),
			active        BOOLEAN NOT NULL DEFAULT FALSE,
			created_at    TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS roles (
			id   INTEGER PRIMARY KEY,
			name VARCHAR(64) NOT NULL UNIQUE
		)`,
		`INSERT INTO roles (id, name) VALUES
			(1, 'admin'), (2, 'author'), (3, 'reviewer'), (4, 'publisher')
		ON CONFLICT (id) DO NOTHING`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id INTEGER NOT NULL REFERENCES roles(id),
			PRIMARY KEY (user_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS invitations (
			code       TEXT PRIMARY KEY,
			user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMP WITH TIME ZONE NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invitations_user_id ON invitations(user_id)`,
	)
}
