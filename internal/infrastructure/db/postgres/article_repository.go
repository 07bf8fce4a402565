package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

const (
	listArticlesQuery = `
		SELECT a.id, a.headline, a.created_at, a.summary, a.image, u.username, u.display_name
		FROM articles a
		JOIN users u ON u.id = a.author_id
		ORDER BY a.created_at DESC, a.id ASC`

	getArticleQuery = `
		SELECT a.id, a.headline, a.created_at, a.summary, a.body, a.image, u.username, u.display_name
		FROM articles a
		JOIN users u ON u.id = a.author_id
		WHERE a.id = $1`

	listInProgressQuery = `
		SELECT t.id, t.headline, t.created_at
		FROM temporary_articles t
		JOIN users u ON u.id = t.author_id
		WHERE u.username = $1
		ORDER BY t.created_at DESC, t.id ASC`
)

type articleRow struct {
	ID          int64          `db:"id"`
	Headline    string         `db:"headline"`
	CreatedAt   time.Time      `db:"created_at"`
	Summary     string         `db:"summary"`
	Body        string         `db:"body"`
	Image       sql.NullString `db:"image"`
	Username    string         `db:"username"`
	DisplayName sql.NullString `db:"display_name"`
}

func (r articleRow) toDomain() domain.Article {
	return domain.Article{
		ID:        r.ID,
		Headline:  r.Headline,
		CreatedAt: r.CreatedAt,
		Body:      r.Body,
		Summary:   r.Summary,
		Author:    domain.ResolveAuthor(nullable(r.DisplayName), r.Username),
		Image:     nullable(r.Image),
	}
}

type inProgressRow struct {
	ID        uuid.UUID      `db:"id"`
	Headline  sql.NullString `db:"headline"`
	CreatedAt time.Time      `db:"created_at"`
}

// ArticleRepository shapes the article queries. Each call is a single query
// on its own pooled connection.
type ArticleRepository struct {
	pool *Pool
}

func NewArticleRepository(pool *Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

func (r *ArticleRepository) ListSummaries(ctx context.Context) ([]domain.ArticleSummary, error) {
	var rows []articleRow
	err := r.pool.WithConn(ctx, "list articles", func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, listArticlesQuery)
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.ArticleSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain().ToSummary())
	}
	return out, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*domain.Article, error) {
	var row articleRow
	err := r.pool.WithConn(ctx, "get article", func(ctx context.Context, conn *sqlx.Conn) error {
		if err := conn.GetContext(ctx, &row, getArticleQuery, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrArticleNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	article := row.toDomain()
	return &article, nil
}

func (r *ArticleRepository) ListInProgress(ctx context.Context, username string) ([]domain.InProgressArticleSummary, error) {
	var rows []inProgressRow
	err := r.pool.WithConn(ctx, "list in-progress articles", func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, listInProgressQuery, username)
	})
	if err != nil {
		return nil, fmt.Errorf("in-progress articles for %s: %w", username, err)
	}

	out := make([]domain.InProgressArticleSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.InProgressArticleSummary{
			ID:        row.ID,
			Headline:  nullable(row.Headline),
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
