// Package redis provides a thin wrapper around go-redis/v9 for publishing a
// ranking as a sorted set plus one value per member.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/config"
)

// Client wraps a go-redis client.
type Client struct {
	rdb *redis.Client
}

// RankedValue is one ranking member. Score orders it inside the sorted set and
// Value is stored separately under Key.
type RankedValue struct {
	Member string
	Score  float64
	Key    string
	Value  []byte
}

// NewClient creates a Redis client and verifies the connection with a PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// WriteRanking replaces rankingKey with items in one MULTI/EXEC pipeline.
// A positive ttl expires the sorted set and every value key.
func (c *Client) WriteRanking(ctx context.Context, rankingKey string, items []RankedValue, ttl time.Duration) error {
	members := make([]redis.Z, len(items))
	for i, item := range items {
		members[i] = redis.Z{Score: item.Score, Member: item.Member}
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, rankingKey)
		if len(members) > 0 {
			pipe.ZAdd(ctx, rankingKey, members...)
			if ttl > 0 {
				pipe.Expire(ctx, rankingKey, ttl)
			}
		}
		for _, item := range items {
			pipe.Set(ctx, item.Key, item.Value, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing ranking %s: %w", rankingKey, err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
