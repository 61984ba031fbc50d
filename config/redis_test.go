package config

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheService(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return &CacheService{
		Ctx:        context.Background(),
		Connection: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}, mr
}

func TestCacheKeyComposition(t *testing.T) {
	key := CacheKey(42, "summary", []string{"2026-01-01", "2026-08-31"})

	assert.True(t, strings.HasPrefix(key, "ledger:42:summary:"))
}

func TestCacheKeyDeterministic(t *testing.T) {
	a := CacheKey(1, "reports:monthly", []string{"2026-01-01"})
	b := CacheKey(1, "reports:monthly", []string{"2026-01-01"})

	assert.Equal(t, a, b)
}

func TestCacheKeySeparatesFilters(t *testing.T) {
	a := CacheKey(1, "summary", []string{"2026-01-01"})
	b := CacheKey(1, "summary", []string{"2026-02-01"})

	assert.NotEqual(t, a, b)
}

func TestCacheKeySeparatesOrgs(t *testing.T) {
	a := CacheKey(1, "summary", []string{"2026-01-01"})
	b := CacheKey(2, "summary", []string{"2026-01-01"})

	assert.NotEqual(t, a, b)
}

func TestInvalidateTagDropsOnlyOwnOrg(t *testing.T) {
	cache, mr := cacheService(t)

	key_one := CacheKey(1, "summary", []string{"2026-01-01"})
	key_two := CacheKey(2, "summary", []string{"2026-01-01"})

	require.NoError(t, cache.SetKey(key_one, "a", 0))
	require.NoError(t, cache.TagKey(1, key_one))
	require.NoError(t, cache.SetKey(key_two, "b", 0))
	require.NoError(t, cache.TagKey(2, key_two))

	require.NoError(t, cache.InvalidateTag(1))

	assert.False(t, mr.Exists(key_one))
	assert.False(t, mr.Exists(tagKey(1)))
	assert.True(t, mr.Exists(key_two))
}

func TestInvalidateTagWithoutEntries(t *testing.T) {
	cache, _ := cacheService(t)

	assert.NoError(t, cache.InvalidateTag(9))
}
