package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"neuradigest/internal/domain/entity"
	"neuradigest/pkg/config"

	"github.com/redis/go-redis/v9"
)

// digestKey is the Redis key holding the serialized digest.
const digestKey = "neuradigest:news:digest"

// RedisCache stores the digest in Redis so multiple API instances share one
// cache and it survives restarts.
type RedisCache struct {
	client *redis.Client
}

// RedisConfig holds connection settings for the Redis cache backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoadRedisConfigFromEnv loads Redis settings from environment variables.
// An empty REDIS_ADDR means Redis is disabled and the in-memory cache is used.
func LoadRedisConfigFromEnv() RedisConfig {
	return RedisConfig{
		Addr:     config.GetEnvString("REDIS_ADDR", ""),
		Password: config.GetEnvString("REDIS_PASSWORD", ""),
		DB:       config.GetEnvInt("REDIS_DB", 0),
	}
}

// NewRedisCache creates a RedisCache and verifies connectivity.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return &RedisCache{client: client}, nil
}

// Get returns the cached digest, reporting a miss on an absent key.
func (c *RedisCache) Get(ctx context.Context) ([]entity.NewsItem, bool, error) {
	data, err := c.client.Get(ctx, digestKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read digest from redis: %w", err)
	}

	var items []entity.NewsItem
	if err := json.Unmarshal(data, &items); err != nil {
		// 壊れたエントリはキャッシュミスとして扱う
		return nil, false, nil
	}
	return items, true, nil
}

// Set replaces the cached digest with the given TTL.
func (c *RedisCache) Set(ctx context.Context, items []entity.NewsItem, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal digest: %w", err)
	}

	if err := c.client.Set(ctx, digestKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("write digest to redis: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
