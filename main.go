package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Melvillian/after-market/config"
	"github.com/Melvillian/after-market/internal/extract"
	"github.com/Melvillian/after-market/internal/pagesource"
	"github.com/Melvillian/after-market/logger"
	"github.com/Melvillian/after-market/services/cache"
	"github.com/Melvillian/after-market/services/publisher"
	"github.com/Melvillian/after-market/services/runner"
	"github.com/Melvillian/after-market/services/store"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	policy, err := extract.ParseLoserPolicy(cfg.LoserPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid loser policy")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("fetch_mode", cfg.FetchMode).
		Str("loser_policy", cfg.LoserPolicy).
		Msg("Starting capture run")

	// Cancel the run on shutdown signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize the persistence sink
	st, err := store.NewPostgresStore(ctx, cfg.DatabaseURL, store.PostgresConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer st.Close()

	if cfg.RunMigrations {
		if err := st.RunMigrations(cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	// Optional batch fan-out
	var pub publisher.Publisher
	if cfg.RedisAddr != "" {
		redisPub := publisher.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamMaxLength)
		defer redisPub.Close()
		pub = redisPub
		logger.Info("Publishing batches to Redis at %s (DB: %d, Stream: %s)", cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	// Rendered-page source
	source := newSource(ctx, cfg)
	defer source.Close()

	r := runner.New(source, st, pub, policy)

	batch, err := r.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Capture run failed")
		os.Exit(1)
	}

	log.Info().Int("records", len(batch)).Msg("Capture run finished")
}

// newSource builds the rendered-page source for the configured fetch mode
func newSource(ctx context.Context, cfg *config.Config) pagesource.Source {
	if cfg.FetchMode == config.FetchModeStatic {
		var cacheSvc cache.CacheService
		if cfg.MemcacheAddr != "" {
			cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
			logger.Info("Using fetch guard backed by Memcache at %s", cfg.MemcacheAddr)
		}
		return pagesource.NewStaticSource(cfg.AfterMarketURL, cacheSvc, cfg.FetchBlockTime)
	}
	return pagesource.NewChromeSource(ctx, cfg.AfterMarketURL, cfg.RenderTimeout)
}
