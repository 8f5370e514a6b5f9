package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/scholarpath/scholarpath/internal/domain"
)

// SaveBookmark stores a bookmark in Redis
func (s *Store) SaveBookmark(ctx context.Context, b *domain.Bookmark) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	key := BookmarkKey(b.ID)

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save bookmark: %w", err)
	}

	if err := s.client.SAdd(ctx, KeyAllBookmarks, b.ID).Err(); err != nil {
		return fmt.Errorf("failed to add bookmark to set: %w", err)
	}

	return nil
}

// GetBookmark retrieves a bookmark from Redis by ID
func (s *Store) GetBookmark(ctx context.Context, id string) (*domain.Bookmark, error) {
	key := BookmarkKey(id)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	var b domain.Bookmark
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}

	return &b, nil
}

// GetAllBookmarks retrieves all bookmarks from Redis
func (s *Store) GetAllBookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	ids, err := s.client.SMembers(ctx, KeyAllBookmarks).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Bookmark{}, nil
	}

	bookmarks := make([]*domain.Bookmark, 0, len(ids))
	for _, id := range ids {
		b, err := s.GetBookmark(ctx, id)
		if err != nil {
			// Skip bookmarks that couldn't be retrieved
			continue
		}
		bookmarks = append(bookmarks, b)
	}

	return bookmarks, nil
}

// DeleteBookmark removes a bookmark from Redis
func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	key := BookmarkKey(id)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	if err := s.client.SRem(ctx, KeyAllBookmarks, id).Err(); err != nil {
		return fmt.Errorf("failed to remove bookmark from set: %w", err)
	}

	return nil
}
