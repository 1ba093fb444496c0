package roundcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores documents as JSON strings under a key prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache connects to addr and verifies the connection.
func NewRedisCache(ctx context.Context, addr string, db int, prefix string) (*RedisCache, error) {
	if prefix == "" {
		prefix = "golfcard"
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &RedisCache{client: client, prefix: prefix}, nil
}

func (c *RedisCache) key(name string) string {
	return c.prefix + ":" + name
}

func (c *RedisCache) put(ctx context.Context, name string, data []byte) error {
	if err := c.client.Set(ctx, c.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to SET %s: %w", c.key(name), err)
	}
	return nil
}

func (c *RedisCache) get(ctx context.Context, name string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to GET %s: %w", c.key(name), err)
	}
	return data, nil
}

func (c *RedisCache) SaveActive(ctx context.Context, round *rounddomain.Round) error {
	data, err := encodeRound(round)
	if err != nil {
		return err
	}
	return c.put(ctx, KeyActiveRound, data)
}

func (c *RedisCache) LoadActive(ctx context.Context) (*rounddomain.Round, error) {
	data, err := c.get(ctx, KeyActiveRound)
	if err != nil {
		return nil, err
	}
	return decodeRound(data)
}

func (c *RedisCache) ClearActive(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key(KeyActiveRound)).Err(); err != nil {
		return fmt.Errorf("failed to DEL %s: %w", c.key(KeyActiveRound), err)
	}
	return nil
}

func (c *RedisCache) SaveHistory(ctx context.Context, rounds []*rounddomain.Round) error {
	data, err := encodeHistory(rounds)
	if err != nil {
		return err
	}
	return c.put(ctx, KeyRoundHistory, data)
}

func (c *RedisCache) LoadHistory(ctx context.Context) ([]*rounddomain.Round, error) {
	data, err := c.get(ctx, KeyRoundHistory)
	if err != nil {
		return nil, err
	}
	return decodeHistory(data)
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
