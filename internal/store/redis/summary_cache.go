package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheSummary stores a generated summary for an entity
func (s *Store) CacheSummary(ctx context.Context, kind, id, text string, ttl time.Duration) error {
	key := SummaryKey(kind, id)
	if err := s.client.Set(ctx, key, text, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache summary: %w", err)
	}
	return nil
}

// GetCachedSummary retrieves a cached summary. Empty string on cache miss.
func (s *Store) GetCachedSummary(ctx context.Context, kind, id string) (string, error) {
	key := SummaryKey(kind, id)
	text, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil // Cache miss
		}
		return "", fmt.Errorf("failed to get cached summary: %w", err)
	}
	return text, nil
}

// InvalidateSummary removes a cached summary, used after an entity update
func (s *Store) InvalidateSummary(ctx context.Context, kind, id string) error {
	key := SummaryKey(kind, id)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate summary: %w", err)
	}
	return nil
}

// FlushSummaries removes all cached summaries
func (s *Store) FlushSummaries(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixSummary+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete summary key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush summaries: %w", err)
	}
	return nil
}
