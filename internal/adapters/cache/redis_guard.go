package cache

import (
	"context"
	"fmt"
	"time"

	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/go-redis/redis/v8"
)

const guardPrefix = "banca:idem:"

// RedisGuard is a SETNX lock per idempotency key. The database unique index
// remains the source of truth; the guard only stops concurrent duplicates
// from doing the work twice.
type RedisGuard struct {
	client *redis.Client
}

func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client}
}

var _ portssvc.IdempotencyGuard = (*RedisGuard)(nil)

// Acquire returns false when another request holds the key.
func (g *RedisGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, guardPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire idempotency key %s: %w", key, err)
	}
	return ok, nil
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, guardPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key %s: %w", key, err)
	}
	return nil
}

// NewRedisClient connects and pings. Callers treat an error as "run without a guard".
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}
