package domain

import (
	"errors"
	"fmt"

	"github.com/merev/gsr-api/internal/feedback"
)

var (
	ErrInvalidRoundIndex = errors.New("invalid round index")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrDuplicatePlayerID = errors.New("duplicate player id")
	ErrRoundSequence     = errors.New("rounds must follow the canonical order")
)

// Game is an immutable snapshot of a game in progress. Every change
// returns a new *Game; the receiver is never modified.
type Game struct {
	players []Player
	rounds  []Round
	ended   bool
}

// NewGame starts a game for names with all seven rounds empty. Invalid
// names are reported as a *feedback.ValidationError.
func NewGame(names []string) (*Game, error) {
	if fb := ValidatePlayerNames(names); fb.HasFeedback() {
		return nil, feedback.NewValidationError(nil, fb)
	}

	players := make([]Player, 0, len(names))
	for _, name := range names {
		p, err := NewPlayer(name)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	rounds := make([]Round, 0, RoundCount)
	for _, t := range AllRoundTypes() {
		rounds = append(rounds, NewRound(t))
	}

	return &Game{players: players, rounds: rounds}, nil
}

// HydrateGame rebuilds a stored game, checking the structural invariants.
func HydrateGame(players []Player, rounds []Round, ended bool) (*Game, error) {
	if len(rounds) != RoundCount {
		return nil, fmt.Errorf("%w: expected %d rounds, got %d", ErrRoundSequence, RoundCount, len(rounds))
	}
	for i, r := range rounds {
		if r.Type() != RoundType(i) {
			return nil, fmt.Errorf("%w: round %d is %s", ErrRoundSequence, i, r.Type())
		}
	}

	seen := make(map[PlayerID]struct{}, len(players))
	for _, p := range players {
		if _, dup := seen[p.ID()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayerID, p.ID())
		}
		seen[p.ID()] = struct{}{}
	}

	g := &Game{
		players: append([]Player(nil), players...),
		rounds:  make([]Round, len(rounds)),
		ended:   ended,
	}
	for i, r := range rounds {
		g.rounds[i] = r.withScores()
	}
	return g, nil
}

// Players returns the players in seating order.
func (g *Game) Players() []Player {
	return append([]Player(nil), g.players...)
}

// Rounds returns the rounds in play order.
func (g *Game) Rounds() []Round {
	return append([]Round(nil), g.rounds...)
}

func (g *Game) IsEnded() bool { return g.ended }

// Round returns the round at index.
func (g *Game) Round(index int) (Round, error) {
	if index < 0 || index >= len(g.rounds) {
		return Round{}, fmt.Errorf("%w: %d", ErrInvalidRoundIndex, index)
	}
	return g.rounds[index], nil
}

// Player looks a player up by id.
func (g *Game) Player(id PlayerID) (Player, error) {
	for _, p := range g.players {
		if p.ID() == id {
			return p, nil
		}
	}
	return Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
}

// EffectiveScore is the score seen by validation and statistics: rounds
// covered by a player's skip cascade count as Skipped whatever is stored.
func (g *Game) EffectiveScore(roundIndex int, p Player) RoundScore {
	if p.IsSkippedAt(roundIndex) {
		return Skipped{}
	}
	if roundIndex < 0 || roundIndex >= len(g.rounds) {
		return Pending{}
	}
	return g.rounds[roundIndex].Score(p.ID())
}

// UpdateRound returns a copy of g with the round at index replaced.
func (g *Game) UpdateRound(index int, r Round) (*Game, error) {
	if index < 0 || index >= len(g.rounds) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRoundIndex, index)
	}
	if r.Type() != g.rounds[index].Type() {
		return nil, fmt.Errorf("%w: round %d is %s", ErrRoundSequence, index, g.rounds[index].Type())
	}
	next := g.clone()
	next.rounds[index] = r
	return next, nil
}

// UpdatePlayer returns a copy of g with fn applied to the player with id.
// The player's identity and name are kept whatever fn returns.
func (g *Game) UpdatePlayer(id PlayerID, fn func(Player) Player) (*Game, error) {
	for i, p := range g.players {
		if p.ID() != id {
			continue
		}
		updated := fn(p)
		updated.id, updated.name = p.id, p.name
		next := g.clone()
		next.players[i] = updated
		return next, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
}

// End returns an ended copy of g.
func (g *Game) End() *Game {
	next := g.clone()
	next.ended = true
	return next
}

// Reopen returns a copy of g that accepts edits again.
func (g *Game) Reopen() *Game {
	next := g.clone()
	next.ended = false
	return next
}

func (g *Game) clone() *Game {
	return &Game{
		players: append([]Player(nil), g.players...),
		rounds:  append([]Round(nil), g.rounds...),
		ended:   g.ended,
	}
}
