package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

type stubArticleRepo struct {
	summaries []domain.ArticleSummary
	listErr   error
	listCalls int

	article *domain.Article
	findErr error

	drafts    []domain.InProgressArticleSummary
	draftErr  error
	draftUser string
}

func (r *stubArticleRepo) ListSummaries(_ context.Context) ([]domain.ArticleSummary, error) {
	r.listCalls++
	return r.summaries, r.listErr
}

func (r *stubArticleRepo) FindByID(_ context.Context, id int64) (*domain.Article, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.article == nil || r.article.ID != id {
		return nil, domain.ErrArticleNotFound
	}
	return r.article, nil
}

func (r *stubArticleRepo) ListInProgress(_ context.Context, username string) ([]domain.InProgressArticleSummary, error) {
	r.draftUser = username
	return r.drafts, r.draftErr
}

type stubArticleCache struct {
	cached []domain.ArticleSummary
	hit    bool
	getErr error
	stored [][]domain.ArticleSummary
}

func (c *stubArticleCache) GetSummaries(_ context.Context) ([]domain.ArticleSummary, bool, error) {
	return c.cached, c.hit, c.getErr
}

func (c *stubArticleCache) SetSummaries(_ context.Context, summaries []domain.ArticleSummary) error {
	c.stored = append(c.stored, summaries)
	return nil
}

func sampleSummaries() []domain.ArticleSummary {
	return []domain.ArticleSummary{
		{ID: 2, Headline: "Second", CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Author: "Alice"},
		{ID: 1, Headline: "First", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Author: "bob"},
	}
}

func TestArticleService_ListArticles_Degraded(t *testing.T) {
	repo := &stubArticleRepo{listErr: &domain.PoolError{Err: errors.New("timeout")}}
	svc := NewArticleService(repo, nil, zerolog.Nop())

	got := svc.ListArticles(context.Background())
	if got == nil {
		t.Fatalf("expected empty non-nil list")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %d", len(got))
	}
}

func TestArticleService_ListArticles_CacheMissFillsCache(t *testing.T) {
	repo := &stubArticleRepo{summaries: sampleSummaries()}
	cache := &stubArticleCache{}
	svc := NewArticleService(repo, cache, zerolog.Nop())

	got := svc.ListArticles(context.Background())
	if len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("unexpected summaries: %+v", got)
	}
	if len(cache.stored) != 1 {
		t.Fatalf("expected cache to be filled once, got %d", len(cache.stored))
	}
}

func TestArticleService_ListArticles_CacheHit(t *testing.T) {
	repo := &stubArticleRepo{summaries: sampleSummaries()}
	cache := &stubArticleCache{cached: sampleSummaries()[:1], hit: true}
	svc := NewArticleService(repo, cache, zerolog.Nop())

	got := svc.ListArticles(context.Background())
	if len(got) != 1 {
		t.Fatalf("expected cached list, got %+v", got)
	}
	if repo.listCalls != 0 {
		t.Fatalf("expected repository not to be queried on a hit")
	}
}

func TestArticleService_ListArticles_CacheErrorFallsThrough(t *testing.T) {
	repo := &stubArticleRepo{summaries: sampleSummaries()}
	cache := &stubArticleCache{getErr: errors.New("redis down")}
	svc := NewArticleService(repo, cache, zerolog.Nop())

	if got := svc.ListArticles(context.Background()); len(got) != 2 {
		t.Fatalf("expected repository result, got %+v", got)
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected one repository call, got %d", repo.listCalls)
	}
}

func TestArticleService_ListArticles_DegradedResultNotCached(t *testing.T) {
	repo := &stubArticleRepo{listErr: &domain.QueryError{Op: "list", Err: errors.New("bad")}}
	cache := &stubArticleCache{}
	svc := NewArticleService(repo, cache, zerolog.Nop())

	_ = svc.ListArticles(context.Background())
	if len(cache.stored) != 0 {
		t.Fatalf("degraded result must not be cached")
	}
}

func TestArticleService_GetArticle(t *testing.T) {
	article := &domain.Article{ID: 7, Headline: "Hello", Body: "World", Author: "alice"}
	svc := NewArticleService(&stubArticleRepo{article: article}, nil, zerolog.Nop())

	got, ok := svc.GetArticle(context.Background(), 7)
	if !ok || got.Headline != "Hello" {
		t.Fatalf("expected article 7, got %+v ok=%v", got, ok)
	}

	if _, ok := svc.GetArticle(context.Background(), 8); ok {
		t.Fatalf("expected missing article to report false")
	}
}

func TestArticleService_GetArticle_QueryError(t *testing.T) {
	repo := &stubArticleRepo{findErr: &domain.QueryError{Op: "find article", Err: errors.New("boom")}}
	svc := NewArticleService(repo, nil, zerolog.Nop())

	if got, ok := svc.GetArticle(context.Background(), 1); ok || got != nil {
		t.Fatalf("expected failure to look like absence, got %+v", got)
	}
}

func TestArticleService_ListInProgress_Access(t *testing.T) {
	headline := "Draft"
	repo := &stubArticleRepo{drafts: []domain.InProgressArticleSummary{{ID: uuid.New(), Headline: &headline}}}
	svc := NewArticleService(repo, nil, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.ListInProgress(ctx, domain.Anonymous()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for anonymous, got %v", err)
	}

	reviewer := domain.Authenticated(domain.NewPrincipal("rita", []domain.RoleID{domain.RoleReviewer}))
	if _, err := svc.ListInProgress(ctx, reviewer); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for reviewer, got %v", err)
	}

	author := domain.Authenticated(domain.NewPrincipal("alice", []domain.RoleID{domain.RoleAuthor}))
	drafts, err := svc.ListInProgress(ctx, author)
	if err != nil {
		t.Fatalf("ListInProgress returned error: %v", err)
	}
	if len(drafts) != 1 || repo.draftUser != "alice" {
		t.Fatalf("unexpected drafts %+v for %q", drafts, repo.draftUser)
	}
}

func TestArticleService_ListInProgress_EmptyIsNonNil(t *testing.T) {
	svc := NewArticleService(&stubArticleRepo{}, nil, zerolog.Nop())
	admin := domain.Authenticated(domain.NewPrincipal("root", []domain.RoleID{domain.RoleAdmin}))

	drafts, err := svc.ListInProgress(context.Background(), admin)
	if err != nil {
		t.Fatalf("ListInProgress returned error: %v", err)
	}
	if drafts == nil {
		t.Fatalf("expected empty non-nil slice")
	}
}
