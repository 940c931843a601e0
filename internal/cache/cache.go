// Package cache is the external, explicitly non-authoritative caching
// boundary spec.md §4.4 and §6 allow for reads: asset-type metadata
// (cacheable with any TTL since it is immutable post-provisioning) and
// wallet balances (stale-by-cache reads accepted at the boundary, but
// never fed back into the Ledger Engine). Grounded on
// internal/infra/redis.go in the jordyorel-congo_pay pack entry for
// client construction, and internal/middleware/idempotency.go for the
// Get/Set/Del usage pattern against go-redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"walletcore/internal/models"
)

const (
	assetTypePrefix = "wallet:asset_type:"
	balancePrefix   = "wallet:balance:"
)

// NewClient configures a redis.Client and verifies connectivity, the
// same shape as the pack's NewRedisClient.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// AssetTypeCache fronts internal/store.AssetTypeStore.GetByIdentifier.
// Entries never expire by default: asset metadata is immutable
// post-provisioning (spec.md §4.4), so there is no staleness to bound.
type AssetTypeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAssetTypeCache(client *redis.Client, ttl time.Duration) *AssetTypeCache {
	return &AssetTypeCache{client: client, ttl: ttl}
}

func (c *AssetTypeCache) Get(ctx context.Context, identifier string) (models.AssetType, bool) {
	raw, err := c.client.Get(ctx, assetTypePrefix+identifier).Result()
	if err != nil {
		return models.AssetType{}, false
	}
	var asset models.AssetType
	if err := json.Unmarshal([]byte(raw), &asset); err != nil {
		return models.AssetType{}, false
	}
	return asset, true
}

func (c *AssetTypeCache) Set(ctx context.Context, identifier string, asset models.AssetType) {
	payload, err := json.Marshal(asset)
	if err != nil {
		return
	}
	c.client.Set(ctx, assetTypePrefix+identifier, payload, c.ttl)
}

// BalanceCache fronts internal/store.WalletStore.GetBalance. It is an
// external read-side convenience only: spec.md §4.4 forbids feeding a
// cached balance back into the Ledger Engine, so internal/ledger never
// touches it and internal/wallet's mutating paths only Invalidate
// entries after an operation returns, never read them.
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBalanceCache(client *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{client: client, ttl: ttl}
}

func balanceKey(userID string, assetTypeID int32) string {
	return fmt.Sprintf("%s%s:%d", balancePrefix, userID, assetTypeID)
}

func (c *BalanceCache) Get(ctx context.Context, userID string, assetTypeID int32) (string, bool) {
	raw, err := c.client.Get(ctx, balanceKey(userID, assetTypeID)).Result()
	if err != nil {
		return "", false
	}
	return raw, true
}

func (c *BalanceCache) Set(ctx context.Context, userID string, assetTypeID int32, balance string) {
	c.client.Set(ctx, balanceKey(userID, assetTypeID), balance, c.ttl)
}

// Invalidate drops a cached balance. Called after a ledger operation
// commits so the cache does not stay stale past its own TTL for the
// common case of a client reading its own recent write.
func (c *BalanceCache) Invalidate(ctx context.Context, userID string, assetTypeID int32) {
	c.client.Del(ctx, balanceKey(userID, assetTypeID))
}
