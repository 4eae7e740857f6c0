package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/redis"
)

type rankingWriter interface {
	WriteRanking(ctx context.Context, rankingKey string, items []redis.RankedValue, ttl time.Duration) error
	Close() error
}

// RedisSink stores the ranking as a sorted set scored by frequency and each
// entry as a JSON string.
//
//	<prefix><run>:ranking        ZSET word -> frequency
//	<prefix><run>:entry:<word>   STRING entry JSON
type RedisSink struct {
	client rankingWriter
	prefix string
	ttl    time.Duration
}

// NewRedisSink returns a sink that writes keys under prefix with the
// given TTL. A zero TTL keeps keys forever.
func NewRedisSink(client *redis.Client, prefix string, ttl time.Duration) *RedisSink {
	return &RedisSink{client: client, prefix: prefix, ttl: ttl}
}

// Name returns "redis".
func (s *RedisSink) Name() string { return "redis" }

// Write stores the ranking and entries of r in one transaction.
func (s *RedisSink) Write(ctx context.Context, r *Report) error {
	items, err := rankedValues(s.prefix, r)
	if err != nil {
		return err
	}
	return s.client.WriteRanking(ctx, rankingKey(s.prefix, r.RunID), items, s.ttl)
}

// Close closes the redis client.
func (s *RedisSink) Close() error {
	return s.client.Close()
}

func rankingKey(prefix, runID string) string {
	return prefix + runID + ":ranking"
}

func entryKey(prefix, runID, word string) string {
	return prefix + runID + ":entry:" + word
}

func rankedValues(prefix string, r *Report) ([]redis.RankedValue, error) {
	items := make([]redis.RankedValue, len(r.Entries))
	for i, e := range r.Entries {
		value, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("encoding entry %q: %w", e.Word, err)
		}
		items[i] = redis.RankedValue{
			Member: e.Word,
			Score:  float64(e.Frequency),
			Key:    entryKey(prefix, r.RunID, e.Word),
			Value:  value,
		}
	}
	return items, nil
}
