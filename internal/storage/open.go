package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/merev/gsr-api/internal/config"
	"github.com/merev/gsr-api/internal/database"
	"github.com/merev/gsr-api/internal/game"
)

// Open builds the repository selected by cfg.Driver. The returned close
// function releases its connections.
func Open(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (game.Repository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := database.NewPool(ctx, cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx, db, logger); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
		return game.NewPostgresRepository(db), db.Close, nil

	case config.DriverSQLite:
		s, err := NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.InfoContext(ctx, "using sqlite storage", slog.String("path", cfg.SQLitePath))
		return s, func() { _ = s.Close() }, nil

	case config.DriverMemory:
		logger.WarnContext(ctx, "using in-memory storage; the game is lost on restart")
		return NewMemory(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
