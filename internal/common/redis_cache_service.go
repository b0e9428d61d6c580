package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pinkslip-racing/pinkslip/internal/logging"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 3 * time.Second

// RedisCacheService implements CacheInterface using Redis
type RedisCacheService struct {
	client *redis.Client
	prefix string
}

// Ensure RedisCacheService implements CacheInterface
var _ CacheInterface = (*RedisCacheService)(nil)

// NewRedisCacheService connects to host:port and verifies the connection.
// Every key is stored under prefix.
func NewRedisCacheService(ctx context.Context, host, port, password, prefix string) (*RedisCacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  redisOpTimeout,
		WriteTimeout: redisOpTimeout,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.Info("Connected to Redis", "addr", client.Options().Addr)
	return &RedisCacheService{client: client, prefix: prefix}, nil
}

func (r *RedisCacheService) key(k string) string {
	return r.prefix + k
}

func (r *RedisCacheService) Set(key string, value string, duration time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key(key), value, duration).Err(); err != nil {
		logging.Warn("Redis cache set failed", "key", key, "error", err)
	}
}

// Get treats Redis errors as misses so callers fall through to the source
func (r *RedisCacheService) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		logging.Warn("Redis cache get failed", "key", key, "error", err)
		return "", false
	}
	return val, true
}

func (r *RedisCacheService) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		logging.Warn("Redis cache delete failed", "key", key, "error", err)
	}
}

func (r *RedisCacheService) GetOrSet(key string, duration time.Duration, loader func() (string, error)) (string, error) {
	if val, found := r.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return "", err
	}

	r.Set(key, val, duration)
	return val, nil
}

// Ping is used by the health endpoint
func (r *RedisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisCacheService) Close() error {
	return r.client.Close()
}
