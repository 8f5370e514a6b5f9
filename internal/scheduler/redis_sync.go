package scheduler

import (
	"context"

	"github.com/scholarpath/scholarpath/internal/logger"
	"github.com/scholarpath/scholarpath/internal/store"
	redisstore "github.com/scholarpath/scholarpath/internal/store/redis"
)

// RedisSyncer replays persisted records into the memory store at startup,
// so signups, admin-created scholarships and bookmarks survive restarts.
// Universities are not replayed: the seed file is their only source and
// the reloader applies it right after the sync.
type RedisSyncer struct {
	store  *redisstore.Store
	memory *store.Memory
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer.
func NewRedisSyncer(
	st *redisstore.Store,
	memory *store.Memory,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  st,
		memory: memory,
		logger: log,
	}
}

// Sync loads persisted records and upserts them into memory.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing persisted records from redis to memory")

	scholarships, err := rs.store.GetAllScholarships(ctx)
	if err != nil {
		return err
	}
	for _, s := range scholarships {
		if err := rs.memory.UpsertScholarship(ctx, s); err != nil {
			rs.logger.Warn("skipping persisted scholarship",
				logger.String("id", s.ID),
				logger.Error(err))
		}
	}

	users, err := rs.store.GetAllUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if err := rs.memory.UpsertUser(ctx, u); err != nil {
			rs.logger.Warn("skipping persisted user",
				logger.String("id", u.ID),
				logger.Error(err))
		}
	}

	bookmarks, err := rs.store.GetAllBookmarks(ctx)
	if err != nil {
		return err
	}
	for _, b := range bookmarks {
		if err := rs.memory.UpsertBookmark(ctx, b); err != nil {
			rs.logger.Warn("skipping persisted bookmark",
				logger.String("id", b.ID),
				logger.Error(err))
		}
	}

	rs.logger.Info("synced persisted records",
		logger.Int("scholarships", len(scholarships)),
		logger.Int("users", len(users)),
		logger.Int("bookmarks", len(bookmarks)))

	return nil
}
