// Package storage holds the embedded game repositories used when no
// Postgres server is configured.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/merev/gsr-api/internal/codec"
	"github.com/merev/gsr-api/internal/domain"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the active game as a JSON snapshot in a single row.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database and runs migrations.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// one connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS active_game (
			slot       INTEGER PRIMARY KEY CHECK (slot = 1),
			state_json TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

// Save upserts the snapshot.
func (s *SQLiteStore) Save(ctx context.Context, g *domain.Game) error {
	state, err := codec.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO active_game (slot, state_json, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET state_json = excluded.state_json, updated_at = excluded.updated_at
	`, string(state))
	return err
}

// Load returns nil, nil when no game is stored.
func (s *SQLiteStore) Load(ctx context.Context) (*domain.Game, error) {
	var state string
	err := s.db.QueryRowContext(ctx, "SELECT state_json FROM active_game WHERE slot = 1").Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	g, err := codec.Unmarshal([]byte(state))
	if err != nil {
		return nil, fmt.Errorf("decode stored game: %w", err)
	}
	return g, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM active_game WHERE slot = 1")
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
