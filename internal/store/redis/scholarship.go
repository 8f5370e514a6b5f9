package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/scholarpath/scholarpath/internal/domain"
)

// SaveScholarship stores a scholarship in Redis
func (s *Store) SaveScholarship(ctx context.Context, rec *domain.Scholarship) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal scholarship: %w", err)
	}

	key := ScholarshipKey(rec.ID)

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save scholarship: %w", err)
	}

	if err := s.client.SAdd(ctx, KeyAllScholarships, rec.ID).Err(); err != nil {
		return fmt.Errorf("failed to add scholarship to set: %w", err)
	}

	return nil
}

// GetScholarship retrieves a scholarship from Redis by ID
func (s *Store) GetScholarship(ctx context.Context, id string) (*domain.Scholarship, error) {
	key := ScholarshipKey(id)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("scholarship %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}

	var rec domain.Scholarship
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scholarship: %w", err)
	}

	return &rec, nil
}

// GetAllScholarships retrieves all scholarships from Redis
func (s *Store) GetAllScholarships(ctx context.Context) ([]*domain.Scholarship, error) {
	ids, err := s.client.SMembers(ctx, KeyAllScholarships).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get scholarship IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Scholarship{}, nil
	}

	recs := make([]*domain.Scholarship, 0, len(ids))
	for _, id := range ids {
		rec, err := s.GetScholarship(ctx, id)
		if err != nil {
			// Skip records that couldn't be retrieved
			continue
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

// SaveScholarshipsMany stores multiple scholarships in Redis (bulk operation)
func (s *Store) SaveScholarshipsMany(ctx context.Context, recs []*domain.Scholarship) error {
	pipe := s.client.Pipeline()

	for _, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal scholarship %s: %w", rec.ID, err)
		}

		pipe.Set(ctx, ScholarshipKey(rec.ID), data, 0)
		pipe.SAdd(ctx, KeyAllScholarships, rec.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save scholarships: %w", err)
	}

	return nil
}
