package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordlens/internal/config"
	"wordlens/internal/handler"
	"wordlens/internal/middleware"
	"wordlens/internal/provider/datamuse"
	"wordlens/internal/provider/dictapi"
	"wordlens/internal/provider/imageload"
	"wordlens/internal/provider/imageproxy"
	"wordlens/internal/provider/pixabay"
	"wordlens/internal/repository"
	"wordlens/internal/repository/memory"
	"wordlens/internal/repository/postgres"
	"wordlens/internal/server"
	"wordlens/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const imageLoadTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Wordlens",
		zap.String("addr", cfg.Server.Addr),
		zap.String("cache_backend", cfg.ImageCache.Backend),
	)

	// Initialize image cache
	imageCache, closeCache, err := openImageCache(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open image cache", zap.Error(err))
	}
	defer closeCache()

	// Initialize providers
	dictionary := dictapi.NewClient(cfg.Lookup.DictionaryURL, logger)
	thesaurus := datamuse.NewClient(cfg.Lookup.DatamuseURL, logger)
	images := imageproxy.NewClient(cfg.ImageProxyURL(), logger)
	upstream := pixabay.NewClient(cfg.Pixabay.URL, cfg.Pixabay.APIKey, cfg.Pixabay.RatePerMinute, logger)

	if cfg.Pixabay.APIKey == "" {
		logger.Warn("PIXABAY_API_KEY is not set, image lookups will fail")
	}

	// Initialize services
	fetcher := service.NewFetcher(dictionary, thesaurus, images, cfg.Lookup.Timeout, logger)
	preloader := service.NewPreloader(imageload.NewLoader(imageLoadTimeout), nil, cfg.Lookup.PreloadBatchPause, logger)
	imageService := service.NewImageSearchService(upstream, imageCache, cfg.ImageCache.Fresh, logger)
	cleanupService := service.NewCleanupService(imageCache, cfg.ImageCache.Retention, logger)

	// Start HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.NewRouter(imageService, fetcher, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Initialize Telegram bot
	var bot *tele.Bot
	var h *handler.Handler
	var pruneSessions func()
	if cfg.BotToken == "" {
		logger.Warn("BOT_TOKEN is not set, Telegram bot disabled")
	} else {
		bot, err = tele.NewBot(tele.Settings{
			Token:  cfg.BotToken,
			Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}
		bot.Use(middleware.Recover(logger), middleware.Logging(logger))

		newSession := func(chatID int64, presenter service.Presenter) *service.Session {
			return service.NewSession(chatID, fetcher, preloader, presenter, service.SessionConfig{
				Debounce: cfg.Lookup.Debounce,
			}, logger)
		}
		h = handler.NewHandler(bot, newSession, logger)
		h.RegisterHandlers()
		pruneSessions = func() { h.PruneIdle(cfg.Lookup.SessionIdleTimeout) }

		logger.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

		// Start bot in background
		go bot.Start()
	}

	// Start cleanup job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runCleanupJob(ctx, cleanupService, pruneSessions, cfg.ImageCache.Retention, logger)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping...")

	// Graceful shutdown
	if bot != nil {
		bot.Stop()
		h.Close()
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Stopped gracefully")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	return cfg.Build()
}

// openImageCache returns the configured image cache and its closer
func openImageCache(cfg *config.Config, logger *zap.Logger) (repository.ImageCacheRepository, func(), error) {
	if cfg.ImageCache.Backend != config.CacheBackendPostgres {
		repo, err := memory.NewImageCacheRepo(cfg.ImageCache.Size)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	}

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, nil, err
	}

	return postgres.NewImageCacheRepo(db), func() { db.Close() }, nil
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runCleanupJob periodically prunes the image cache and idle chat sessions
func runCleanupJob(
	ctx context.Context,
	cleanupService *service.CleanupService,
	pruneSessions func(),
	interval time.Duration,
	logger *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			if err := cleanupService.CleanupStale(ctx); err != nil {
				logger.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
			if pruneSessions != nil {
				pruneSessions()
			}
		}
	}
}
