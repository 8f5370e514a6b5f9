package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/scholarpath/scholarpath/internal/domain"
)

// ReplaceUniversities swaps the persisted university collection. The
// collection is read-only at runtime, so removed seed entries are deleted
// rather than kept around.
func (s *Store) ReplaceUniversities(ctx context.Context, recs []*domain.University) error {
	existing, err := s.client.SMembers(ctx, KeyAllUniversities).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to get university IDs: %w", err)
	}

	keep := make(map[string]bool, len(recs))
	pipe := s.client.Pipeline()

	for _, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal university %s: %w", rec.ID, err)
		}
		keep[rec.ID] = true
		pipe.Set(ctx, UniversityKey(rec.ID), data, 0)
		pipe.SAdd(ctx, KeyAllUniversities, rec.ID)
	}

	for _, id := range existing {
		if !keep[id] {
			pipe.Del(ctx, UniversityKey(id))
			pipe.SRem(ctx, KeyAllUniversities, id)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace universities: %w", err)
	}

	return nil
}

// GetAllUniversities retrieves all universities from Redis
func (s *Store) GetAllUniversities(ctx context.Context) ([]*domain.University, error) {
	ids, err := s.client.SMembers(ctx, KeyAllUniversities).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get university IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.University{}, nil
	}

	recs := make([]*domain.University, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, UniversityKey(id)).Bytes()
		if err != nil {
			// Skip records that couldn't be retrieved
			continue
		}
		var rec domain.University
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		recs = append(recs, &rec)
	}

	return recs, nil
}
