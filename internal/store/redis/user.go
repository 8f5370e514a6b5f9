package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scholarpath/scholarpath/internal/domain"
)

// persistedUser is the storage shape for a user. domain.User never
// serializes its password hash, so persistence carries it explicitly.
type persistedUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash []byte    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func toPersistedUser(u *domain.User) persistedUser {
	return persistedUser{
		ID:           u.ID,
		Email:        u.Email,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (p persistedUser) toDomain() *domain.User {
	return &domain.User{
		ID:           p.ID,
		Email:        p.Email,
		Role:         domain.Role(p.Role),
		PasswordHash: p.PasswordHash,
		CreatedAt:    p.CreatedAt,
	}
}

// SaveUser stores a user in Redis
func (s *Store) SaveUser(ctx context.Context, u *domain.User) error {
	data, err := json.Marshal(toPersistedUser(u))
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	key := UserKey(u.ID)

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	if err := s.client.SAdd(ctx, KeyAllUsers, u.ID).Err(); err != nil {
		return fmt.Errorf("failed to add user to set: %w", err)
	}

	return nil
}

// GetUser retrieves a user from Redis by ID
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	key := UserKey(id)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var p persistedUser
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return p.toDomain(), nil
}

// GetAllUsers retrieves all users from Redis
func (s *Store) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	ids, err := s.client.SMembers(ctx, KeyAllUsers).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get user IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.User{}, nil
	}

	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.GetUser(ctx, id)
		if err != nil {
			// Skip users that couldn't be retrieved
			continue
		}
		users = append(users, u)
	}

	return users, nil
}
