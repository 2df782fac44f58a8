package domain

import (
	"strings"

	"github.com/merev/gsr-api/internal/feedback"
)

const (
	MinPlayers = 2
	MaxPlayers = 8
)

// Feedback field names.
const (
	FieldPlayers = "players"
	FieldScore   = "score"
	FieldRound   = "round"
	FieldPlayer  = "player"
	FieldGame    = "game"
)

// ValidatePlayerNames checks a roster. Every rule is evaluated.
func ValidatePlayerNames(names []string) feedback.Feedback {
	var errs []string

	if len(names) < MinPlayers {
		errs = append(errs, "At least 2 players required")
	}
	if len(names) > MaxPlayers {
		errs = append(errs, "Maximum 8 players allowed")
	}

	seen := make(map[string]struct{}, len(names))
	empty, duplicate := false, false
	for _, n := range names {
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			empty = true
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			duplicate = true
		}
		seen[key] = struct{}{}
	}
	if empty {
		errs = append(errs, "Player names cannot be empty")
	}
	if duplicate {
		errs = append(errs, "Player names must be unique")
	}

	return feedback.For(FieldPlayers, errs...)
}

// ValidateScore checks a raw score value. Every rule is evaluated.
func ValidateScore(value int) feedback.Feedback {
	var errs []string

	if value < MinScore {
		errs = append(errs, "Score must be at least 0")
	}
	if value > MaxScore {
		errs = append(errs, "Score must be at most 300")
	}
	if value%ScoreStep != 0 {
		errs = append(errs, "Score must be divisible by 5")
	}

	return feedback.For(FieldScore, errs...)
}

// ValidateRoundCompletion reports whether round can be locked. Players
// skipped in the round, explicitly or through their cascade, are ignored;
// a round without active players is valid.
func ValidateRoundCompletion(round Round, roundIndex int, players []Player) feedback.Feedback {
	var (
		errs    []string
		missing []string
		winners int
	)

	for _, p := range players {
		if p.IsSkippedAt(roundIndex) {
			continue
		}
		switch rs := round.Score(p.ID()).(type) {
		case Skipped:
			continue
		case Entered:
			if rs.Score.IsWin() {
				winners++
			}
		case Pending:
			missing = append(missing, p.Name())
		}
	}

	if len(missing) > 0 {
		errs = append(errs, "Missing scores for: "+strings.Join(missing, ", "))
	}
	if winners == 0 && len(missing) == 0 && hasActivePlayer(round, roundIndex, players) {
		errs = append(errs, "Exactly one player must have a score of 0 (the round winner)")
	}
	if winners > 1 {
		errs = append(errs, "Only one player can have a score of 0")
	}

	return feedback.For(FieldRound, errs...)
}

func hasActivePlayer(round Round, roundIndex int, players []Player) bool {
	for _, p := range players {
		if !p.IsSkippedAt(roundIndex) && !IsSkipped(round.Score(p.ID())) {
			return true
		}
	}
	return false
}

// IsRoundFullySkipped reports whether no player is active in the round.
func IsRoundFullySkipped(round Round, roundIndex int, players []Player) bool {
	return !hasActivePlayer(round, roundIndex, players)
}
