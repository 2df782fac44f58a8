package domain

import (
	"errors"
	"strings"
)

var ErrEmptyPlayerName = errors.New("player name cannot be empty")

// Player is a seat at the table. Only the skip cascade changes during a game.
type Player struct {
	id       PlayerID
	name     string
	skipFrom int
	skipping bool
}

// NewPlayer creates a player with a fresh id and the trimmed name.
func NewPlayer(name string) (Player, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Player{}, ErrEmptyPlayerName
	}
	return Player{id: GeneratePlayerID(), name: trimmed}, nil
}

// HydratePlayer rebuilds a stored player. skipFrom is nil when the player
// plays every round.
func HydratePlayer(id PlayerID, name string, skipFrom *int) (Player, error) {
	if id.IsZero() {
		return Player{}, ErrEmptyPlayerID
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Player{}, ErrEmptyPlayerName
	}
	p := Player{id: id, name: trimmed}
	if skipFrom != nil {
		if *skipFrom < 0 || *skipFrom >= RoundCount {
			return Player{}, ErrInvalidRoundIndex
		}
		p.skipFrom, p.skipping = *skipFrom, true
	}
	return p, nil
}

func (p Player) ID() PlayerID { return p.id }

func (p Player) Name() string { return p.name }

// SkipFromRound returns the first round of the skip cascade, if any.
func (p Player) SkipFromRound() (int, bool) {
	return p.skipFrom, p.skipping
}

// SkipFrom returns a copy of p that skips roundIndex and every later round.
func (p Player) SkipFrom(roundIndex int) Player {
	p.skipFrom, p.skipping = roundIndex, true
	return p
}

// ClearSkip returns a copy of p without a skip cascade.
func (p Player) ClearSkip() Player {
	p.skipFrom, p.skipping = 0, false
	return p
}

// IsSkippedAt reports whether the cascade covers roundIndex.
func (p Player) IsSkippedAt(roundIndex int) bool {
	return p.skipping && roundIndex >= p.skipFrom
}
