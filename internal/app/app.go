package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/scholarpath/scholarpath/internal/auth"
	"github.com/scholarpath/scholarpath/internal/bookmarks"
	"github.com/scholarpath/scholarpath/internal/config"
	"github.com/scholarpath/scholarpath/internal/httpserver"
	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
	"github.com/scholarpath/scholarpath/internal/logger"
	"github.com/scholarpath/scholarpath/internal/redis"
	"github.com/scholarpath/scholarpath/internal/scheduler"
	"github.com/scholarpath/scholarpath/internal/store"
	redisstore "github.com/scholarpath/scholarpath/internal/store/redis"
	"github.com/scholarpath/scholarpath/internal/summary"
	"github.com/scholarpath/scholarpath/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memory      *store.Memory
	reloader    *scheduler.SeedReloader
	sweeper     *scheduler.BookmarkSweeper
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// In-memory store is authoritative; Redis is the write-through copy.
	memory := store.NewMemory()
	persist := redisstore.NewStore(redisClient)

	// Replay persisted records (signups, admin-created scholarships,
	// bookmarks) before the seed is applied on top.
	syncer := scheduler.NewRedisSyncer(persist, memory, loggerClient)
	if err := syncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to sync from redis on startup, starting from seed only",
			logger.Error(err))
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewSeedReloader(
		cfg.SeedFile,
		memory,
		persist,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	sweeper := scheduler.NewBookmarkSweeper(
		memory,
		persist,
		loggerClient,
		cfg.SweepInterval,
	)

	authService := auth.NewService(
		memory,
		persist,
		[]byte(cfg.JWTSecret),
		cfg.TokenTTL,
		cfg.GoogleUserEmail,
		loggerClient,
	)

	bookmarkManager := bookmarks.NewManager(memory, memory, memory, persist, loggerClient)

	// Summaries are opt-in: no API key, no collaborator.
	var summarizer summary.Summarizer
	if cfg.GeminiAPIKey != "" {
		gem, err := summary.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			loggerClient.Errorf("Failed to initialize summary collaborator: %v", err)
			os.Exit(1)
		}
		summarizer = gem
		loggerClient.Info("summary collaborator enabled",
			logger.String("model", cfg.GeminiModel))
	} else {
		loggerClient.Info("no Gemini API key configured, summaries disabled")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		Memory:            memory,
		RedisClient:       redisClient,
		RedisStore:        persist,
		Bookmarks:         bookmarkManager,
		Auth:              authService,
		Summarizer:        summarizer,
		SummaryTimeout:    cfg.SummaryTimeout,
		SummaryCacheTTL:   cfg.SummaryCacheTTL,
		AllowedHosts:      cfg.AllowedHosts,
		AdminCIDRS:        cfg.AdminCIDRS,
		TrustProxy:        cfg.TrustProxy,
		ReloadTrigger:     reloadTrigger,
		AuthRateBurst:     cfg.AuthRateBurst,
		AuthRatePerMinute: cfg.AuthRatePerMinute,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memory:      memory,
		reloader:    reloader,
		sweeper:     sweeper,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting ScholarPath v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("ScholarPath %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start seed reloader (loads collections and starts periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start seed reloader: %w", err)
	}
	a.logger.Info("seed reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	// Start bookmark sweeper
	if err := a.sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start bookmark sweeper: %w", err)
	}
	a.logger.Info("bookmark sweeper started",
		logger.Duration("interval", a.cfg.SweepInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ ScholarPath stopped cleanly")
	return nil
}
