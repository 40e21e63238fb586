package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "book:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestBookCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	bc := NewBookCache(client, 1*time.Minute)

	ctx := context.Background()
	projectID := uuid.New()

	// Miss.
	data, ok := bc.Get(ctx, projectID, ExportVariant())
	if ok {
		t.Error("expected cache miss")
	}
	if data != nil {
		t.Error("expected nil data on miss")
	}

	// Set.
	html := []byte("<html><body>Export</body></html>")
	bc.Set(ctx, projectID, ExportVariant(), html)

	// Hit.
	data, ok = bc.Get(ctx, projectID, ExportVariant())
	if !ok {
		t.Error("expected cache hit")
	}
	if string(data) != string(html) {
		t.Errorf("data mismatch: got %q, want %q", data, html)
	}
}

func TestBookCacheVariantsAreSeparate(t *testing.T) {
	client := testValkeyClient(t)
	bc := NewBookCache(client, 1*time.Minute)

	ctx := context.Background()
	projectID := uuid.New()

	bc.Set(ctx, projectID, PreviewVariant(0), []byte("cover"))
	bc.Set(ctx, projectID, PreviewVariant(1), []byte("page one"))

	data, ok := bc.Get(ctx, projectID, PreviewVariant(1))
	if !ok || string(data) != "page one" {
		t.Errorf("variant 1: got %q, ok=%v", data, ok)
	}
	if _, ok := bc.Get(ctx, projectID, PreviewVariant(2)); ok {
		t.Error("expected miss for unset variant")
	}
}

func TestBookCacheInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	bc := NewBookCache(client, 1*time.Minute)

	ctx := context.Background()
	mine := uuid.New()
	other := uuid.New()

	bc.Set(ctx, mine, ExportVariant(), []byte("export"))
	bc.Set(ctx, mine, PreviewVariant(0), []byte("cover"))
	bc.Set(ctx, other, ExportVariant(), []byte("other export"))

	bc.Invalidate(ctx, mine)

	if _, ok := bc.Get(ctx, mine, ExportVariant()); ok {
		t.Error("expected export miss after invalidation")
	}
	if _, ok := bc.Get(ctx, mine, PreviewVariant(0)); ok {
		t.Error("expected preview miss after invalidation")
	}

	// Other projects must be untouched.
	if _, ok := bc.Get(ctx, other, ExportVariant()); !ok {
		t.Error("invalidation leaked into another project")
	}
}

func TestNewBookCacheDefaultTTL(t *testing.T) {
	client := testValkeyClient(t)

	// TTL = 0 should use default.
	bc := NewBookCache(client, 0)
	if bc.ttl != DefaultBookTTL {
		t.Errorf("expected DefaultBookTTL (%v), got %v", DefaultBookTTL, bc.ttl)
	}
}
