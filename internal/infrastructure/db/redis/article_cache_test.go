package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewArticleCache_DefaultTTL(t *testing.T) {
	c := NewArticleCache(nil, 0)
	if c.ttl != defaultArticleTTL {
		t.Fatalf("expected default ttl, got %s", c.ttl)
	}
}

func TestArticleCache_UnreachableIsErrorNotMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	_, ok, err := NewArticleCache(client, time.Second).GetSummaries(context.Background())
	if err == nil {
		t.Fatalf("expected an error for an unreachable server")
	}
	if ok {
		t.Fatalf("an error must not report a hit")
	}
}
