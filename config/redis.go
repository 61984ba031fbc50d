package config

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	Redis *CacheService
)

type CacheService struct {
	Ctx        context.Context
	Connection *redis.Client
}

func NewCacheService() error {
	c := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT"),
		Username: os.Getenv("REDIS_USERNAME"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	ctx := context.Background()

	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	Redis = &CacheService{
		Ctx:        ctx,
		Connection: c,
	}

	return nil
}

// CacheKey builds the cache key for a derived view. filter is any
// serializable filter set; it is hashed so the key stays bounded.
func CacheKey(orgID int64, resource string, filter interface{}) string {
	raw, _ := json.Marshal(filter)
	h := fnv.New64a()
	h.Write(raw)

	return "ledger:" + strconv.FormatInt(orgID, 10) + ":" + resource + ":" + fmt.Sprintf("%016x", h.Sum64())
}

func tagKey(orgID int64) string {
	return "ledger:" + strconv.FormatInt(orgID, 10) + ":tags"
}

func (c *CacheService) GetKey(key string, src interface{}) error {
	val, err := c.Connection.Get(c.Ctx, key).Result()
	if err == redis.Nil || err != nil {
		return err
	}
	err = json.Unmarshal([]byte(val), src)
	if err != nil {
		return err
	}
	return nil
}

func (c *CacheService) SetKey(key string, value interface{}, expiration time.Duration) error {
	cacheEntry, err := json.Marshal(value)
	if err != nil {
		return err
	}
	err = c.Connection.Set(c.Ctx, key, cacheEntry, expiration).Err()
	if err != nil {
		return err
	}
	return nil
}

// TagKey records key under the org's tag set so a later mutation can
// drop every derived view of that org without touching other tenants.
func (c *CacheService) TagKey(orgID int64, key string) error {
	return c.Connection.SAdd(c.Ctx, tagKey(orgID), key).Err()
}

// InvalidateTag deletes every cached key tagged with orgID, then the
// tag set itself. Other orgs' entries are untouched.
func (c *CacheService) InvalidateTag(orgID int64) error {
	keys, err := c.Connection.SMembers(c.Ctx, tagKey(orgID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	if len(keys) > 0 {
		if err := c.Connection.Del(c.Ctx, keys...).Err(); err != nil {
			return err
		}
	}

	return c.Connection.Del(c.Ctx, tagKey(orgID)).Err()
}
