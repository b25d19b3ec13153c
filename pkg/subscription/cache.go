package subscription

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheConfig holds configuration for the read-through record cache.
type CacheConfig struct {
	TTL       time.Duration `env:"SUBSCRIPTION_CACHE_TTL" envDefault:"60s"`
	KeyPrefix string        `env:"SUBSCRIPTION_CACHE_PREFIX" envDefault:"linkbio:subscription:"`
}

// cachedStore is a read-through Redis cache decorator over a Store.
// Entitlement resolution hits the record on every gated action, so a short
// TTL keeps the database out of the hot path. Saves invalidate eagerly;
// the worst case after a missed invalidation is one TTL of stale gating.
type cachedStore struct {
	inner  Store
	client *redis.Client
	cfg    CacheConfig
}

// NewCachedStore wraps a Store with a Redis read-through cache.
// Panics on nil dependencies to fail fast during initialization.
func NewCachedStore(inner Store, client *redis.Client, cfg CacheConfig) Store {
	if inner == nil {
		panic("subscription: inner Store is required")
	}
	if client == nil {
		panic("subscription: redis client is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Minute
	}

	return &cachedStore{inner: inner, client: client, cfg: cfg}
}

func (s *cachedStore) Get(ctx context.Context, userID uuid.UUID) (*Record, error) {
	key := s.cfg.KeyPrefix + userID.String()

	if data, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var record Record
		if err := json.Unmarshal(data, &record); err == nil {
			return &record, nil
		}
		// Corrupt cache entry: drop it and fall through to the store.
		_ = s.client.Del(ctx, key).Err()
	}

	record, err := s.inner.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Cache failures are not load-bearing; the store already answered.
	if data, err := json.Marshal(record); err == nil {
		_ = s.client.Set(ctx, key, data, s.cfg.TTL).Err()
	}

	return record, nil
}

func (s *cachedStore) Save(ctx context.Context, record *Record) error {
	if err := s.inner.Save(ctx, record); err != nil {
		return err
	}

	_ = s.client.Del(ctx, s.cfg.KeyPrefix+record.UserID.String()).Err()
	return nil
}
