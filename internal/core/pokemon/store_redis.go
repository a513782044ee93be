package pokemon

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/pokedex/internal/platform/constants"
)

// CacheClient is the subset of [*redis.Client] used by [CachedRepository].
type CacheClient interface {
	Get(context context.Context, key string) *redis.StringCmd
	Set(context context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(context context.Context, keys ...string) *redis.IntCmd
}

// CachedRepository is a read-through Redis cache in front of another
// [Repository].
//
// # Consistency
//
// Writes go to the inner repository first and then drop the cached
// document. Cache failures are logged and never fail the caller.
type CachedRepository struct {
	inner  Repository
	client CacheClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps inner with a Redis cache whose entries live for ttl.
func NewCachedRepository(inner Repository, client CacheClient, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

/*
Load returns the cached catalog, or loads it from the inner repository and
caches it.

Description: Empty catalogs are not cached so that a freshly seeded document
becomes visible immediately.
*/
func (repository *CachedRepository) Load(context context.Context) ([]*Pokemon, error) {

	// 1. Cache lookup
	raw, err := repository.client.Get(context, constants.RedisKeyCatalog).Bytes()
	switch {
	case err == nil:
		var records []*Pokemon
		decodeErr := json.Unmarshal(raw, &records)
		if decodeErr == nil {
			return records, nil
		}
		repository.logger.WarnContext(context, "catalog_cache_corrupt", slog.Any("error", decodeErr))
	case !errors.Is(err, redis.Nil):
		repository.logger.WarnContext(context, "catalog_cache_get_failed", slog.Any("error", err))
	}

	// 2. Source of truth
	records, err := repository.inner.Load(context)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}

	// 3. Populate
	payload, err := json.Marshal(records)
	if err != nil {
		repository.logger.WarnContext(context, "catalog_cache_encode_failed", slog.Any("error", err))
		return records, nil
	}
	if err := repository.client.Set(context, constants.RedisKeyCatalog, payload, repository.ttl).Err(); err != nil {
		repository.logger.WarnContext(context, "catalog_cache_set_failed", slog.Any("error", err))
	}

	return records, nil
}

// Append writes through to the inner repository and invalidates the cache.
func (repository *CachedRepository) Append(context context.Context, record *Pokemon) error {
	if err := repository.inner.Append(context, record); err != nil {
		return err
	}
	repository.invalidate(context)
	return nil
}

// Replace writes through to the inner repository and invalidates the cache.
func (repository *CachedRepository) Replace(context context.Context, records []*Pokemon) error {
	if err := repository.inner.Replace(context, records); err != nil {
		return err
	}
	repository.invalidate(context)
	return nil
}

// invalidate drops the cached document.
func (repository *CachedRepository) invalidate(context context.Context) {
	if err := repository.client.Del(context, constants.RedisKeyCatalog).Err(); err != nil {
		repository.logger.WarnContext(context, "catalog_cache_invalidate_failed", slog.Any("error", err))
	}
}
