package openai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "estimate:gen:"

// ResponseCache memoizes generator responses in Redis, keyed by a hash
// of the full prompt. Identical regenerate clicks are common and the
// backend is the slowest, most expensive hop in the request.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ResponseCache{client: client, ttl: ttl}
}

func (c *ResponseCache) Get(ctx context.Context, prompt string) (string, bool) {
	val, err := c.client.Get(ctx, cacheKey(prompt)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores best-effort; a cache write failure never surfaces.
func (c *ResponseCache) Set(ctx context.Context, prompt, content string) {
	_ = c.client.Set(ctx, cacheKey(prompt), content, c.ttl).Err()
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
