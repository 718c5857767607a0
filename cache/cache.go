package cache

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

const statusKey = "shop:status"

// Cache wraps an optional Redis connection for the public shop-status
// endpoint. When REDIS_URL is unset every operation is a no-op and the
// handlers fall through to the database.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New() *Cache {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		return &Cache{}
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("Invalid REDIS_URL, caching disabled: %v", err)
		return &Cache{}
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable, caching disabled: %v", err)
		return &Cache{}
	}

	log.Println("Redis cache connected")
	return &Cache{client: client, ttl: 30 * time.Second}
}

// Enabled reports whether a Redis backend is wired in.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// GetStatus returns the cached shop-status payload, or ok=false on a miss.
func (c *Cache) GetStatus(ctx context.Context) (string, bool) {
	if !c.Enabled() {
		return "", false
	}
	val, err := c.client.Get(ctx, statusKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis get failed: %v", err)
		}
		return "", false
	}
	return val, true
}

// SetStatus caches the shop-status payload. The caller passes a TTL so
// time-sensitive payloads can expire early; it is clamped to the cache's
// default when zero, negative or too long.
func (c *Cache) SetStatus(ctx context.Context, payload string, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	if ttl <= 0 || ttl > c.ttl {
		ttl = c.ttl
	}
	if err := c.client.Set(ctx, statusKey, payload, ttl).Err(); err != nil {
		log.Printf("Redis set failed: %v", err)
	}
}

// InvalidateStatus drops the cached status. Called after any write that
// changes the schedule, the override or the shop profile.
func (c *Cache) InvalidateStatus(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Del(ctx, statusKey).Err(); err != nil {
		log.Printf("Redis del failed: %v", err)
	}
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
