package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultSummaryTTL bounds how long a generated summary is reused
	// before the collaborator is called again.
	DefaultSummaryTTL = 24 * time.Hour
)

// Store persists records to Redis so runtime-created data (signups,
// admin-created scholarships, bookmarks) survives restarts. The memory
// store stays authoritative; every write here is best-effort.
//
// Layout per collection: one JSON value per record plus a set of all IDs.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
