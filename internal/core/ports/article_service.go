package ports

import (
	"context"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

type ArticleService interface {
	ListArticles(ctx context.Context) []domain.ArticleSummary
	GetArticle(ctx context.Context, id int64) (*domain.Article, bool)
	ListInProgress(ctx context.Context, id domain.Identity) ([]domain.InProgressArticleSummary, error)
}
