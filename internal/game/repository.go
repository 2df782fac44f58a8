package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/merev/gsr-api/internal/codec"
	"github.com/merev/gsr-api/internal/domain"
)

// activeSlot is the key of the only row in active_game.
const activeSlot = 1

// PostgresRepository keeps the active game as a JSONB snapshot.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save upserts the snapshot into the active slot.
func (r *PostgresRepository) Save(ctx context.Context, g *domain.Game) error {
	state, err := codec.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game: %w", err)
	}

	_, err = r.db.Exec(ctx, `
INSERT INTO active_game (slot, state, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (slot) DO UPDATE
SET state = EXCLUDED.state,
    updated_at = EXCLUDED.updated_at;
`, activeSlot, state)
	return err
}

// Load returns nil, nil when the slot is empty.
func (r *PostgresRepository) Load(ctx context.Context) (*domain.Game, error) {
	var state []byte
	err := r.db.QueryRow(ctx, `
SELECT state
FROM active_game
WHERE slot = $1;
`, activeSlot).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	g, err := codec.Unmarshal(state)
	if err != nil {
		return nil, fmt.Errorf("decode stored game: %w", err)
	}
	return g, nil
}

func (r *PostgresRepository) Clear(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM active_game WHERE slot = $1;`, activeSlot)
	return err
}
