package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/logger"
	"github.com/scholarpath/scholarpath/internal/store"
	redisstore "github.com/scholarpath/scholarpath/internal/store/redis"
)

// BookmarkSweeper removes dangling bookmarks: entries whose target entity
// no longer exists. Universities can disappear on a seed reload; their
// bookmarks would otherwise point at nothing forever.
type BookmarkSweeper struct {
	memory   *store.Memory
	persist  *redisstore.Store // nil disables persistence
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewBookmarkSweeper creates a new sweeper.
func NewBookmarkSweeper(
	memory *store.Memory,
	persist *redisstore.Store,
	log logger.Logger,
	interval time.Duration,
) *BookmarkSweeper {
	return &BookmarkSweeper{
		memory:   memory,
		persist:  persist,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs a sweep immediately, then on the interval.
func (bs *BookmarkSweeper) Start(ctx context.Context) error {
	if err := bs.Sweep(ctx); err != nil {
		bs.logger.Warn("initial bookmark sweep failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(bs.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := bs.Sweep(ctx); err != nil {
					bs.logger.Error("bookmark sweep failed",
						logger.Error(err))
				}
			case <-bs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the sweeper.
func (bs *BookmarkSweeper) Stop() {
	close(bs.stopCh)
}

// Sweep deletes every bookmark whose entity does not resolve.
func (bs *BookmarkSweeper) Sweep(ctx context.Context) error {
	bookmarks, err := bs.memory.ScanBookmarks(ctx, nil)
	if err != nil {
		return err
	}

	deleted := 0
	for _, b := range bookmarks {
		if bs.resolves(ctx, b) {
			continue
		}

		removed, err := bs.memory.DeleteBookmark(ctx, b.ID)
		if err != nil || !removed {
			continue
		}
		deleted++

		if bs.persist != nil {
			if perr := bs.persist.DeleteBookmark(ctx, b.ID); perr != nil {
				bs.logger.Warn("failed to delete persisted bookmark",
					logger.String("bookmark_id", b.ID),
					logger.Error(perr))
			}
		}
	}

	if deleted > 0 {
		bs.logger.Info("removed dangling bookmarks",
			logger.Int("count", deleted))
	} else {
		bs.logger.Debug("no dangling bookmarks")
	}

	return nil
}

func (bs *BookmarkSweeper) resolves(ctx context.Context, b *domain.Bookmark) bool {
	var err error
	switch b.EntityKind {
	case domain.KindScholarship:
		_, err = bs.memory.FindScholarship(ctx, b.EntityID)
	case domain.KindUniversity:
		_, err = bs.memory.FindUniversity(ctx, b.EntityID)
	default:
		return false
	}
	return !errors.Is(err, domain.ErrNotFound)
}
