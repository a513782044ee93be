package pokemon_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokedex/internal/core/pokemon"
)

// fakeCache is an in-memory [pokemon.CacheClient].
type fakeCache struct {
	values map[string]string
	getErr error
	setErr error
	delErr error
	sets   int
	dels   int
	ttl    time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (cache *fakeCache) Get(_ context.Context, key string) *redis.StringCmd {
	if cache.getErr != nil {
		return redis.NewStringResult("", cache.getErr)
	}
	value, ok := cache.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (cache *fakeCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cache.sets++
	cache.ttl = expiration
	if cache.setErr != nil {
		return redis.NewStatusResult("", cache.setErr)
	}
	switch v := value.(type) {
	case []byte:
		cache.values[key] = string(v)
	default:
		cache.values[key] = fmt.Sprint(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (cache *fakeCache) Del(_ context.Context, keys ...string) *redis.IntCmd {
	cache.dels++
	if cache.delErr != nil {
		return redis.NewIntResult(0, cache.delErr)
	}
	for _, key := range keys {
		delete(cache.values, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

/*
TestCachedRepository_ReadThrough populates the cache on miss and serves hits from it.
*/
func TestCachedRepository_ReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := newMemoryRepository(sampleCatalog()...)
	cache := newFakeCache()
	repository := pokemon.NewCachedRepository(inner, cache, time.Minute, discardLogger())

	first, err := repository.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleCatalog(), first)
	assert.Equal(t, 1, inner.loads)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, time.Minute, cache.ttl)

	second, err := repository.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleCatalog(), second)
	assert.Equal(t, 1, inner.loads, "second load must be served from cache")
}

/*
TestCachedRepository_WritesInvalidate drops the cached document after writes.
*/
func TestCachedRepository_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	inner := newMemoryRepository(sampleCatalog()...)
	cache := newFakeCache()
	repository := pokemon.NewCachedRepository(inner, cache, time.Minute, discardLogger())

	_, err := repository.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, repository.Append(ctx, &pokemon.Pokemon{ID: 3, Name: "Venusaur", Types: []string{"grass"}, URL: "x"}))
	assert.Empty(t, cache.values)

	records, err := repository.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	require.NoError(t, repository.Replace(ctx, sampleCatalog()[:1]))
	records, err = repository.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 2, cache.dels)
}

/*
TestCachedRepository_Degraded falls back to the inner repository on cache failures.
*/
func TestCachedRepository_Degraded(t *testing.T) {
	ctx := context.Background()
	inner := newMemoryRepository(sampleCatalog()...)
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	cache.delErr = errors.New("connection refused")
	repository := pokemon.NewCachedRepository(inner, cache, time.Minute, discardLogger())

	records, err := repository.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	require.NoError(t, repository.Append(ctx, &pokemon.Pokemon{ID: 3, Name: "Venusaur", Types: []string{"grass"}, URL: "x"}))
}

/*
TestCachedRepository_CorruptEntry ignores undecodable cache entries.
*/
func TestCachedRepository_CorruptEntry(t *testing.T) {
	inner := newMemoryRepository(sampleCatalog()...)
	cache := newFakeCache()
	cache.values["pokedex:catalog"] = "{broken"
	repository := pokemon.NewCachedRepository(inner, cache, time.Minute, discardLogger())

	records, err := repository.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 1, inner.loads)
}

/*
TestCachedRepository_EmptyNotCached does not cache an empty catalog.
*/
func TestCachedRepository_EmptyNotCached(t *testing.T) {
	cache := newFakeCache()
	repository := pokemon.NewCachedRepository(newMemoryRepository(), cache, time.Minute, discardLogger())

	records, err := repository.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, cache.sets)
}

/*
TestCachedRepository_AppendError propagates inner failures without invalidating.
*/
func TestCachedRepository_AppendError(t *testing.T) {
	inner := newMemoryRepository(sampleCatalog()...)
	inner.appendErr = errors.New("disk full")
	cache := newFakeCache()
	repository := pokemon.NewCachedRepository(inner, cache, time.Minute, discardLogger())

	err := repository.Append(context.Background(), &pokemon.Pokemon{ID: 3, Name: "Venusaur", Types: []string{"grass"}, URL: "x"})
	assert.Error(t, err)
	assert.Zero(t, cache.dels)
}

// *redis.Client must satisfy the cache contract.
var _ pokemon.CacheClient = (*redis.Client)(nil)
