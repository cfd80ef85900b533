package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tradevision/internal/domain"

	"github.com/redis/go-redis/v9"
)

const metadataKeyPrefix = "tradevision:metadata:"

// MetadataCache is a best-effort read-through cache for fetched video
// metadata, keyed by video URL. A nil client turns every operation into a
// no-op, so callers never branch on whether Redis is configured.
type MetadataCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMetadataCache(client *redis.Client, ttl time.Duration) *MetadataCache {
	return &MetadataCache{client: client, ttl: ttl}
}

func (c *MetadataCache) Get(ctx context.Context, videoURL string) (*domain.VideoContext, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, metadataKeyPrefix+videoURL).Bytes()
	if err != nil {
		return nil, false
	}
	var vctx domain.VideoContext
	if err := json.Unmarshal(raw, &vctx); err != nil {
		return nil, false
	}
	return &vctx, true
}

func (c *MetadataCache) Set(ctx context.Context, videoURL string, vctx *domain.VideoContext) {
	if c == nil || c.client == nil || vctx == nil {
		return
	}
	raw, err := json.Marshal(vctx)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, metadataKeyPrefix+videoURL, raw, c.ttl).Err(); err != nil {
		log.Printf("metadata cache set failed: %v", err)
	}
}
