//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/cache"
	"github.com/fintrack/fintrack/internal/testutil"
)

func setupCache(t *testing.T) *cache.Cache {
	t.Helper()

	redisURL := testutil.RequireEnv(t, "TEST_REDIS_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := cache.New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connecting to test redis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flushing redis: %v", err)
	}

	return c
}

func TestIntegration_CheckIPRateLimit_ExhaustsBurst(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	const (
		rps   = 1
		burst = 3
	)

	for i := 0; i < burst; i++ {
		result, err := c.CheckIPRateLimit(ctx, "203.0.113.7", rps, burst)
		if err != nil {
			t.Fatalf("CheckIPRateLimit failed: %v", err)
		}
		if !result.Allowed {
			t.Fatalf("request %d within burst was denied", i+1)
		}
	}

	result, err := c.CheckIPRateLimit(ctx, "203.0.113.7", rps, burst)
	if err != nil {
		t.Fatalf("CheckIPRateLimit failed: %v", err)
	}
	if result.Allowed {
		t.Error("request beyond burst was allowed")
	}
	if result.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want positive", result.RetryAfter)
	}
}

func TestIntegration_CheckIPRateLimit_IsolatesClients(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	const (
		rps   = 1
		burst = 2
	)

	for i := 0; i < burst+1; i++ {
		_, err := c.CheckIPRateLimit(ctx, "203.0.113.7", rps, burst)
		if err != nil {
			t.Fatalf("CheckIPRateLimit failed: %v", err)
		}
	}

	// A different client keeps its own bucket.
	result, err := c.CheckIPRateLimit(ctx, "203.0.113.8", rps, burst)
	if err != nil {
		t.Fatalf("CheckIPRateLimit failed: %v", err)
	}
	if !result.Allowed {
		t.Error("a fresh client was denied by another client's bucket")
	}
}
