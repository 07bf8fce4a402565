package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

const (
	defaultArticleTTL   = 30 * time.Second
	articleSummariesKey = "gazette:articles:summaries"
)

// ArticleCache keeps the published article listing in Redis for a short TTL.
type ArticleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewArticleCache creates an ArticleCache. A non-positive ttl uses the default.
func NewArticleCache(client *redis.Client, ttl time.Duration) *ArticleCache {
	if ttl <= 0 {
		ttl = defaultArticleTTL
	}
	return &ArticleCache{client: client, ttl: ttl}
}

// GetSummaries returns the cached listing, reporting false on a miss.
func (c *ArticleCache) GetSummaries(ctx context.Context) ([]domain.ArticleSummary, bool, error) {
	raw, err := c.client.Get(ctx, articleSummariesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("article cache get: %w", err)
	}

	var summaries []domain.ArticleSummary
	if err := json.Unmarshal(raw, &summaries); err != nil {
		return nil, false, fmt.Errorf("article cache decode: %w", err)
	}
	return summaries, true, nil
}

// SetSummaries stores the listing until the TTL expires.
func (c *ArticleCache) SetSummaries(ctx context.Context, summaries []domain.ArticleSummary) error {
	raw, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("article cache encode: %w", err)
	}
	return c.client.Set(ctx, articleSummariesKey, raw, c.ttl).Err()
}
