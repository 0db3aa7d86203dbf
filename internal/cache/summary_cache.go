package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rickyckwong/transfer-suggest/internal/config"
	"github.com/rickyckwong/transfer-suggest/internal/domain"
)

const (
	summaryKeyPrefix     = "transfer:summary"
	summaryScanBatchSize = 100
)

// SummaryCache memoizes run summaries keyed by dataset content and mode, so
// re-analyzing an unchanged upload skips the full matching pass's fold.
type SummaryCache interface {
	Get(ctx context.Context, datasetHash string, mode domain.Mode) (*domain.Summary, bool, error)
	Set(ctx context.Context, datasetHash string, mode domain.Mode, summary *domain.Summary) error
	InvalidateAll(ctx context.Context) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

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

func (c *redisSummaryCache) Get(ctx context.Context, datasetHash string, mode domain.Mode) (*domain.Summary, bool, error) {
	payload, err := c.client.Get(ctx, buildSummaryKey(datasetHash, mode)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode summary cache: %w", err)
	}
	return &summary, true, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, datasetHash string, mode domain.Mode, summary *domain.Summary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary cache: %w", err)
	}

	if err := c.client.Set(ctx, buildSummaryKey(datasetHash, mode), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSummaryCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, summaryKeyPrefix, summaryScanBatchSize)
}

func (n *noopSummaryCache) Get(ctx context.Context, datasetHash string, mode domain.Mode) (*domain.Summary, bool, error) {
	return nil, false, nil
}

func (n *noopSummaryCache) Set(ctx context.Context, datasetHash string, mode domain.Mode, summary *domain.Summary) error {
	return nil
}

func (n *noopSummaryCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildSummaryKey(datasetHash string, mode domain.Mode) string {
	return fmt.Sprintf("%s:%s:%s", summaryKeyPrefix, mode, datasetHash)
}

// HashDataset fingerprints raw file content for cache keying.
func HashDataset(content []byte) string {
	sum := sha1.Sum(content)
	return hex.EncodeToString(sum[:])
}
