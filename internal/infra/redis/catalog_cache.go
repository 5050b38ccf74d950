package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"foodscroll-go/internal/api/dto"

	"github.com/redis/go-redis/v9"
)

// CatalogCache 商家主页缓存，JSON 序列化，短 TTL
type CatalogCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewCatalogCache(client redis.Cmdable, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

func catalogKey(partnerID int64) string {
	return Key("catalog", strconv.FormatInt(partnerID, 10))
}

// Get 未命中返回 (nil, false, nil)
func (c *CatalogCache) Get(ctx context.Context, partnerID int64) (*dto.PartnerCatalog, bool, error) {
	raw, err := c.client.Get(ctx, catalogKey(partnerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var catalog dto.PartnerCatalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, false, fmt.Errorf("decode catalog cache: %w", err)
	}
	return &catalog, true, nil
}

func (c *CatalogCache) Set(ctx context.Context, partnerID int64, catalog *dto.PartnerCatalog) error {
	raw, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey(partnerID), raw, c.ttl).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context, partnerID int64) error {
	return c.client.Del(ctx, catalogKey(partnerID)).Err()
}
