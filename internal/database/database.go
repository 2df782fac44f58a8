package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/merev/gsr-api/internal/config"
)

const (
	applicationName = "gsr-api"
	connectTimeout  = 5 * time.Second
)

// NewPool connects to the Postgres server named by cfg.PostgresDSN and
// verifies it with a ping.
func NewPool(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres at %s: %w", poolCfg.ConnConfig.Host, err)
	}

	logger.InfoContext(ctx, "connected to postgres",
		slog.String("host", poolCfg.ConnConfig.Host),
		slog.String("database", poolCfg.ConnConfig.Database),
		slog.Int("max_conns", int(poolCfg.MaxConns)),
	)
	return db, nil
}

// poolConfig applies the storage settings on top of the DSN.
func poolConfig(cfg config.StorageConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.PostgresMaxConns > 0 {
		poolCfg.MaxConns = cfg.PostgresMaxConns
	}
	poolCfg.ConnConfig.ConnectTimeout = connectTimeout
	if _, ok := poolCfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	}
	return poolCfg, nil
}

// Migrate creates the single-slot active_game table.
func Migrate(ctx context.Context, db *pgxpool.Pool, logger *slog.Logger) error {
	const activeGameTable = `
CREATE TABLE IF NOT EXISTS active_game (
    slot       SMALLINT PRIMARY KEY CHECK (slot = 1),
    state      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

	if _, err := db.Exec(ctx, activeGameTable); err != nil {
		return err
	}

	logger.InfoContext(ctx, "gsr-api migrations applied")
	return nil
}
