package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andresuchdata/restock-go/internal/config"
	"github.com/redis/go-redis/v9"
)

const summaryKey = "replenishment:recommendation_summary"

// Summary is the per-status recommendation count served by the
// dashboard endpoint.
type Summary struct {
	Counts      map[string]int `json:"counts"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// SummaryCache caches the recommendation summary between analysis
// cycles.
type SummaryCache interface {
	Get(ctx context.Context) (*Summary, bool, error)
	Set(ctx context.Context, summary *Summary) error
	Invalidate(ctx context.Context) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

// NewSummaryCache builds the redis-backed cache, or a noop cache when
// caching is disabled.
func NewSummaryCache(cfg config.CacheConfig) (SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSummaryCache{client: client, ttl: ttl}, nil
}

func NewNoopSummaryCache() SummaryCache {
	return &noopSummaryCache{}
}

func (c *redisSummaryCache) Get(ctx context.Context) (*Summary, bool, error) {
	payload, err := c.client.Get(ctx, summaryKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode summary cache: %w", err)
	}
	return &summary, true, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, summary *Summary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary cache: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSummaryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, summaryKey).Err()
}

func (n *noopSummaryCache) Get(ctx context.Context) (*Summary, bool, error) { return nil, false, nil }

func (n *noopSummaryCache) Set(ctx context.Context, summary *Summary) error { return nil }

func (n *noopSummaryCache) Invalidate(ctx context.Context) error { return nil }
