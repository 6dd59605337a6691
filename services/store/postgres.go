package store

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Melvillian/after-market/internal/extract"
	"github.com/Melvillian/after-market/logger"
	apperr "github.com/Melvillian/after-market/pkg/errors"
)

const tableName = "after_market"

const insertQuery = `INSERT INTO after_market (symbol, percentage, date) VALUES ($1, $2, $3)`

// PostgresConfig holds the connection pool knobs
type PostgresConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// PostgresStore implements Store on top of the after_market table
type PostgresStore struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewPostgresStore connects to Postgres and verifies the connection
func NewPostgresStore(ctx context.Context, dsn string, cfg PostgresConfig) (*PostgresStore, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, apperr.NewStorage("failed to open database connection", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperr.NewStorage("failed to ping database", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log := logger.ForStore()
	log.Info().Msg("Connected to database")

	return &PostgresStore{db: db, log: log}, nil
}

// RunMigrations applies pending schema migrations from the given file path
func (s *PostgresStore) RunMigrations(migrationsPath string) error {
	driver, err := postgres.WithInstance(s.db.DB, &postgres.Config{})
	if err != nil {
		return apperr.NewStorage("failed to create migration driver", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return apperr.NewStorage("failed to create migration instance", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return apperr.NewStorage("failed to run migrations", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		s.log.Warn().Err(err).Msg("Could not get migration version")
	} else {
		s.log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migrations applied")
	}

	return nil
}

// SaveBatch inserts every record of one capture batch inside a single
// transaction, so a batch is persisted all-or-nothing.
func (s *PostgresStore) SaveBatch(ctx context.Context, records []extract.PriceChange) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.NewStorage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, insertQuery)
	if err != nil {
		return apperr.NewStorage("failed to prepare insert", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Symbol, r.Percentage, r.CapturedAt); err != nil {
			return apperr.NewStorage(fmt.Sprintf("failed to insert record for %s", r.Symbol), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.NewStorage("failed to commit transaction", err)
	}

	s.log.Debug().Int("records", len(records)).Str("table", tableName).Msg("Batch persisted")
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
