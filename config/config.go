package config

import (
	"os"
	"strconv"
	"time"

	apperr "github.com/Melvillian/after-market/pkg/errors"
)

// Fetch modes for the rendered-page source
const (
	FetchModeChrome = "chrome"
	FetchModeStatic = "static"
)

// Config represents the application configuration
type Config struct {
	// Target page
	AfterMarketURL string

	// Database configuration
	DatabaseURL     string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnLifetime  time.Duration
	RunMigrations   bool
	MigrationsPath  string

	// Redis configuration (optional batch fan-out)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Memcache configuration (optional fetch guard)
	MemcacheAddr string

	// Fetch configuration
	FetchMode      string
	RenderTimeout  time.Duration
	FetchBlockTime time.Duration

	// Extraction policy for loser rows: "stop" or "skip"
	LoserPolicy string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	maxOpen, _ := strconv.Atoi(getEnv("DATABASE_MAX_OPEN_CONNS", "5"))
	maxIdle, _ := strconv.Atoi(getEnv("DATABASE_MAX_IDLE_CONNS", "2"))
	connLifetime, _ := strconv.Atoi(getEnv("DATABASE_CONN_LIFETIME_SECONDS", "300"))
	renderTimeout, _ := strconv.Atoi(getEnv("RENDER_TIMEOUT_SECONDS", "30"))
	blockTime, _ := strconv.Atoi(getEnv("FETCH_BLOCK_SECONDS", "60"))
	runMigrations, _ := strconv.ParseBool(getEnv("RUN_MIGRATIONS", "false"))

	return &Config{
		AfterMarketURL:       os.Getenv("AFTER_MARKET_URL"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		DBMaxOpenConns:       maxOpen,
		DBMaxIdleConns:       maxIdle,
		DBConnLifetime:       time.Duration(connLifetime) * time.Second,
		RunMigrations:        runMigrations,
		MigrationsPath:       getEnv("MIGRATIONS_PATH", "file://services/store/migrations"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "after_market"),
		RedisStreamMaxLength: streamMaxLen,
		MemcacheAddr:         os.Getenv("MEMCACHE_ADDR"),
		FetchMode:            getEnv("FETCH_MODE", FetchModeChrome),
		RenderTimeout:        time.Duration(renderTimeout) * time.Second,
		FetchBlockTime:       time.Duration(blockTime) * time.Second,
		LoserPolicy:          getEnv("LOSER_POLICY", "stop"),
		Environment:          getEnv("ENVIRONMENT", "development"),
	}
}

// Validate checks that required configuration is present and consistent
func (c *Config) Validate() error {
	if c.AfterMarketURL == "" {
		return apperr.NewConfiguration("AFTER_MARKET_URL is required", nil)
	}
	if c.DatabaseURL == "" {
		return apperr.NewConfiguration("DATABASE_URL is required", nil)
	}
	if c.FetchMode != FetchModeChrome && c.FetchMode != FetchModeStatic {
		return apperr.NewConfiguration("FETCH_MODE must be \"chrome\" or \"static\"", nil)
	}
	if c.LoserPolicy != "stop" && c.LoserPolicy != "skip" {
		return apperr.NewConfiguration("LOSER_POLICY must be \"stop\" or \"skip\"", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
