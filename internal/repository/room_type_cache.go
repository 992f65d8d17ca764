package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const roomTypesKey = "hotel:room_types"

// RedisRoomTypeCache keeps the distinct room type list in Redis.
type RedisRoomTypeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient creates a Redis client for the given address.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisRoomTypeCache creates a cache whose entries expire after ttl.
func NewRedisRoomTypeCache(client *redis.Client, ttl time.Duration) *RedisRoomTypeCache {
	return &RedisRoomTypeCache{client: client, ttl: ttl}
}

// Get returns the cached list; ok is false on a miss.
func (c *RedisRoomTypeCache) Get(ctx context.Context) ([]string, bool, error) {
	val, err := c.client.Get(ctx, roomTypesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get room types from redis: %w", err)
	}

	var types []string
	if err := json.Unmarshal(val, &types); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal room types: %w", err)
	}
	return types, true, nil
}

// Set stores the list.
func (c *RedisRoomTypeCache) Set(ctx context.Context, types []string) error {
	if types == nil {
		types = []string{}
	}
	data, err := json.Marshal(types)
	if err != nil {
		return fmt.Errorf("failed to marshal room types: %w", err)
	}
	if err := c.client.Set(ctx, roomTypesKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set room types in redis: %w", err)
	}
	return nil
}

// Invalidate drops the cached list.
func (c *RedisRoomTypeCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, roomTypesKey).Err(); err != nil {
		return fmt.Errorf("failed to delete room types from redis: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *RedisRoomTypeCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}
