package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/scholarpath/scholarpath/internal/logger"
	"github.com/scholarpath/scholarpath/internal/sources/seed"
	"github.com/scholarpath/scholarpath/internal/store"
	redisstore "github.com/scholarpath/scholarpath/internal/store/redis"
)

// SeedReloader handles periodic reloading of the seed file: scholarship
// and university collections plus the seed user table.
type SeedReloader struct {
	loader        *seed.Loader
	mapper        *seed.Mapper
	memory        *store.Memory
	persist       *redisstore.Store // nil disables persistence
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSeedReloader creates a new seed reloader.
func NewSeedReloader(
	seedFile string,
	memory *store.Memory,
	persist *redisstore.Store,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedReloader {
	return &SeedReloader{
		loader:        seed.NewLoader(seedFile),
		mapper:        seed.NewMapper(),
		memory:        memory,
		persist:       persist,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the seed immediately, then refreshes on the interval or on a
// manual trigger.
func (sr *SeedReloader) Start(ctx context.Context) error {
	if err := sr.Reload(ctx); err != nil {
		return fmt.Errorf("initial seed load failed: %w", err)
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed",
						logger.Error(err))
				}
			case <-sr.manualTrigger:
				sr.logger.Info("manual seed reload triggered")
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed",
						logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (sr *SeedReloader) Stop() {
	close(sr.stopCh)
}

// Reload loads the seed file and applies it to memory and persistence.
// Seed scholarships and users are upserted by ID so runtime-created
// records survive; the read-only university collection is replaced whole.
func (sr *SeedReloader) Reload(ctx context.Context) error {
	sr.logger.Info("reloading seed file")

	file, err := sr.loader.Load()
	if err != nil {
		return err
	}

	scholarships, err := sr.mapper.MapScholarships(file.Scholarships)
	if err != nil {
		return fmt.Errorf("failed to map scholarships: %w", err)
	}
	universities, err := sr.mapper.MapUniversities(file.Universities)
	if err != nil {
		return fmt.Errorf("failed to map universities: %w", err)
	}
	users, err := sr.mapper.MapUsers(file.Users)
	if err != nil {
		return fmt.Errorf("failed to map users: %w", err)
	}

	for _, s := range scholarships {
		if err := sr.memory.UpsertScholarship(ctx, s); err != nil {
			return fmt.Errorf("failed to apply scholarship %s: %w", s.ID, err)
		}
	}
	if err := sr.memory.ReplaceUniversities(ctx, universities); err != nil {
		return fmt.Errorf("failed to apply universities: %w", err)
	}
	for _, u := range users {
		if err := sr.memory.UpsertUser(ctx, u); err != nil {
			return fmt.Errorf("failed to apply seed user %s: %w", u.ID, err)
		}
	}

	sr.memory.SetSeedReloadTime(time.Now())

	if sr.persist != nil {
		if err := sr.persist.SaveScholarshipsMany(ctx, scholarships); err != nil {
			sr.logger.Warn("failed to persist seed scholarships", logger.Error(err))
		}
		if err := sr.persist.ReplaceUniversities(ctx, universities); err != nil {
			sr.logger.Warn("failed to persist seed universities", logger.Error(err))
		}
		for _, u := range users {
			if err := sr.persist.SaveUser(ctx, u); err != nil {
				sr.logger.Warn("failed to persist seed user",
					logger.String("user_id", u.ID),
					logger.Error(err))
			}
		}
	}

	sr.logger.Info("seed applied",
		logger.Int("scholarships", len(scholarships)),
		logger.Int("universities", len(universities)),
		logger.Int("users", len(users)))

	return nil
}
