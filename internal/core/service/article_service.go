package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/gazette-dev/gazette/internal/api/metrics"
	"github.com/gazette-dev/gazette/internal/core/domain"
	"github.com/gazette-dev/gazette/internal/core/ports"
)

// ArticleService serves published articles to everyone and in-progress
// articles to principals allowed to author content.
type ArticleService struct {
	repo   ports.ArticleRepository
	cache  ports.ArticleCache
	logger zerolog.Logger
}

// NewArticleService wires the repository and an optional listing cache
// (nil disables caching).
func NewArticleService(repo ports.ArticleRepository, cache ports.ArticleCache, logger zerolog.Logger) *ArticleService {
	return &ArticleService{repo: repo, cache: cache, logger: logger}
}

// ListArticles returns the published article summaries. Listing must never
// break page rendering, so any datastore failure yields an empty list.
func (s *ArticleService) ListArticles(ctx context.Context) []domain.ArticleSummary {
	if s.cache != nil {
		cached, ok, err := s.cache.GetSummaries(ctx)
		switch {
		case err != nil:
			metrics.ArticleCacheTotal.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Msg("article cache read failed")
		case ok:
			metrics.ArticleCacheTotal.WithLabelValues("hit").Inc()
			return cached
		default:
			metrics.ArticleCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		metrics.ArticleListDegradedTotal.Inc()
		s.logger.Error().Err(err).Msg("list articles failed, serving empty list")
		return []domain.ArticleSummary{}
	}
	if summaries == nil {
		summaries = []domain.ArticleSummary{}
	}

	if s.cache != nil {
		if err := s.cache.SetSummaries(ctx, summaries); err != nil {
			s.logger.Warn().Err(err).Msg("article cache write failed")
		}
	}
	return summaries
}

// GetArticle returns the article with id. The boolean is false when the
// article does not exist or could not be read; callers render both the same.
func (s *ArticleService) GetArticle(ctx context.Context, id int64) (*domain.Article, bool) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrArticleNotFound) {
			s.logger.Error().Err(err).Int64("article_id", id).Msg("get article failed")
		}
		return nil, false
	}
	return article, true
}

// ListInProgress returns the caller's unpublished articles. Callers without
// the author capability are rejected rather than given an empty list:
// anonymous callers with domain.ErrUnauthorized, signed-in users lacking the
// role with domain.ErrForbidden.
func (s *ArticleService) ListInProgress(ctx context.Context, id domain.Identity) ([]domain.InProgressArticleSummary, error) {
	p, ok := id.Principal()
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.CanAuthor(id) {
		return nil, domain.ErrForbidden
	}

	drafts, err := s.repo.ListInProgress(ctx, p.Username)
	if err != nil {
		return nil, err
	}
	if drafts == nil {
		drafts = []domain.InProgressArticleSummary{}
	}
	return drafts, nil
}
