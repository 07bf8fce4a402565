package migrations

import "github.com/jmoiron/sqlx"

func init() {
	addMigration(&migration{
		version: "20240301091500",
		name:    "articles",
		up:      mig_20240301091500_articles_up,
	})
}

func mig_20240301091500_articles_up(tx *sqlx.Tx) error {
	return execAll(tx,
		`CREATE TABLE IF NOT EXISTS articles (
			id         BIGSERIAL PRIMARY KEY,
			author_id  INTEGER NOT NULL REFERENCES users(id),
			headline   TEXT NOT NULL,
			summary    TEXT NOT NULL DEFAULT '',
			body       TEXT NOT NULL DEFAULT '',
			image      TEXT,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at DESC, id)`,
		`CREATE TABLE IF NOT EXISTS temporary_articles (
			id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			author_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			headline   TEXT,
			summary    TEXT,
			body       TEXT,
			image      TEXT,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_temporary_articles_author ON temporary_articles(author_id)`,
	)
}
