package ports

import (
	"context"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

// ArticleRepository reads articles from the datastore.
type ArticleRepository interface {
	// ListSummaries returns published articles, newest first.
	ListSummaries(ctx context.Context) ([]domain.ArticleSummary, error)
	// FindByID returns domain.ErrArticleNotFound when no article has id.
	FindByID(ctx context.Context, id int64) (*domain.Article, error)
	// ListInProgress returns the unpublished articles owned by username.
	ListInProgress(ctx context.Context, username string) ([]domain.InProgressArticleSummary, error)
}

// ArticleCache holds the rendered article listing. A miss is reported as
// (nil, false, nil).
type ArticleCache interface {
	GetSummaries(ctx context.Context) ([]domain.ArticleSummary, bool, error)
	SetSummaries(ctx context.Context, summaries []domain.ArticleSummary) error
}
