// book.go provides a Valkey-backed cache for rendered book output.
// Assembling the book walks every contribution and page of a project
// and is then rendered through templates, so the export document and
// preview fragments are cached per project and dropped whenever
// anything in the project changes.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// bookKeyPrefix is the Valkey key prefix for cached book output.
	bookKeyPrefix = "book:"

	// DefaultBookTTL is how long rendered book output stays cached.
	DefaultBookTTL = 5 * time.Minute
)

// BookCache manages rendered book output caching in Valkey. Entries
// are keyed by project id plus a variant name ("export", "preview:3").
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache creates a book cache backed by the given Valkey client.
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	if ttl == 0 {
		ttl = DefaultBookTTL
	}
	return &BookCache{client: client, ttl: ttl}
}

// Get retrieves cached output for a project variant. Returns false on miss.
func (bc *BookCache) Get(ctx context.Context, projectID uuid.UUID, variant string) ([]byte, bool) {
	key := bookKey(projectID, variant)
	val, err := bc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("book cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("book cache hit", "key", key)
	return val, true
}

// Set stores rendered output for a project variant with the configured TTL.
func (bc *BookCache) Set(ctx context.Context, projectID uuid.UUID, variant string, data []byte) {
	key := bookKey(projectID, variant)
	if err := bc.client.Set(ctx, key, data, bc.ttl).Err(); err != nil {
		slog.Warn("book cache set error", "key", key, "error", err)
	}
}

// Invalidate removes every cached variant for a project. Called after
// any mutation that can change the assembled book: page edits,
// reorders, template switches, cover updates, contribution changes.
func (bc *BookCache) Invalidate(ctx context.Context, projectID uuid.UUID) {
	pattern := bookKeyPrefix + projectID.String() + ":*"
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := bc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("book cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := bc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("book cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("book cache invalidated", "project", projectID, "deleted", deleted)
	}
}

// ExportVariant is the cache variant for the printable export document.
func ExportVariant() string {
	return "export"
}

// PreviewVariant is the cache variant for a single preview page fragment.
func PreviewVariant(index int) string {
	return fmt.Sprintf("preview:%d", index)
}

func bookKey(projectID uuid.UUID, variant string) string {
	return bookKeyPrefix + projectID.String() + ":" + variant
}
