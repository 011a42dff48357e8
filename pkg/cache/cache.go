package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL constants
const (
	TTLSysConfig = 5 * time.Minute  // system config toggles (change rarely)
	TTLUser      = 10 * time.Minute // user profiles
	TTLShort     = 1 * time.Minute  // short-lived entries
	TTLDefault   = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixSysConfig = "sysconfig:"
	PrefixUser      = "user:"
)

// Service Redis cache service interface.
// All operations degrade to no-ops (or misses) when Redis is unavailable,
// so callers never need a nil check.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// System config cache
	GetSysConfig(ctx context.Context, key string) (string, error)
	SetSysConfig(ctx context.Context, key, value string) error
	InvalidateSysConfig(ctx context.Context, key string) error

	// User cache
	GetUser(ctx context.Context, userID int64, dest interface{}) error
	SetUser(ctx context.Context, userID int64, data interface{}) error
	InvalidateUser(ctx context.Context, userID int64) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return redis.Nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) sysConfigKey(key string) string {
	return PrefixSysConfig + key
}

func (c *redisCache) GetSysConfig(ctx context.Context, key string) (string, error) {
	if c.client == nil {
		return "", redis.Nil
	}
	return c.client.Get(ctx, c.sysConfigKey(key)).Result()
}

func (c *redisCache) SetSysConfig(ctx context.Context, key, value string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, c.sysConfigKey(key), value, TTLSysConfig).Err()
}

func (c *redisCache) InvalidateSysConfig(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.sysConfigKey(key)).Err()
}

func (c *redisCache) userKey(userID int64) string {
	return fmt.Sprintf("%s%d", PrefixUser, userID)
}

func (c *redisCache) GetUser(ctx context.Context, userID int64, dest interface{}) error {
	return c.Get(ctx, c.userKey(userID), dest)
}

func (c *redisCache) SetUser(ctx context.Context, userID int64, data interface{}) error {
	return c.Set(ctx, c.userKey(userID), data, TTLUser)
}

func (c *redisCache) InvalidateUser(ctx context.Context, userID int64) error {
	return c.Delete(ctx, c.userKey(userID))
}
