package game

import (
	"errors"
	"fmt"

	"github.com/merev/gsr-api/internal/domain"
	"github.com/merev/gsr-api/internal/feedback"
)

// Reasons carried by *feedback.ValidationError values returned from Service.
var (
	ErrNoActiveGame         = errors.New("no active game")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrInvalidRoundIndex    = errors.New("invalid round index")
	ErrRoundLocked          = errors.New("round is locked")
	ErrPlayerSkipped        = errors.New("player is skipped for this round")
	ErrCannotUnskipCascaded = errors.New("cannot unskip a cascaded round")
	ErrPlayerNotSkipped     = errors.New("player is not skipped for this round")
	ErrRoundAlreadyLocked   = errors.New("round is already locked")
	ErrRoundIncomplete      = errors.New("round is incomplete")
	ErrRoundNotLocked       = errors.New("round is not locked")
	ErrGameEnded            = errors.New("game has ended")
	ErrGameAlreadyEnded     = errors.New("game is already ended")
	ErrIncompleteLocking    = errors.New("not all rounds are locked")
	ErrGameNotEnded         = errors.New("game is not ended")
)

func fail(reason error, field string, msgs ...string) error {
	return feedback.NewValidationError(reason, feedback.For(field, msgs...))
}

func noActiveGame() error {
	return fail(ErrNoActiveGame, domain.FieldGame, "No active game")
}

func playerNotFound() error {
	return fail(ErrPlayerNotFound, domain.FieldPlayer, "Player not found")
}

func invalidRoundIndex() error {
	return fail(ErrInvalidRoundIndex, domain.FieldRound, "Invalid round index")
}

func roundLocked() error {
	return fail(ErrRoundLocked, domain.FieldRound, "Round is locked")
}

// laterRoundLocked reports a locked round reached by a skip cascade change.
func laterRoundLocked(roundIndex int, verb string) error {
	return fail(ErrRoundLocked, domain.FieldRound,
		fmt.Sprintf("Round %d is locked and cannot be %s", roundIndex+1, verb))
}

func playerSkipped() error {
	return fail(ErrPlayerSkipped, domain.FieldPlayer, "Player is skipped for this round")
}

func gameEnded() error {
	return fail(ErrGameEnded, domain.FieldGame, "Game has ended")
}
