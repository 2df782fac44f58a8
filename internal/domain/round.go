package domain

import (
	"errors"
	"maps"
)

var ErrRoundLocked = errors.New("cannot modify scores on a locked round")

// Round holds the scores of one contract. Locked rounds reject edits.
type Round struct {
	roundType RoundType
	scores    map[PlayerID]RoundScore
	locked    bool
}

// NewRound returns an empty, unlocked round.
func NewRound(t RoundType) Round {
	return Round{roundType: t, scores: map[PlayerID]RoundScore{}}
}

// HydrateRound rebuilds a stored round. The scores map is copied.
func HydrateRound(t RoundType, scores map[PlayerID]RoundScore, locked bool) (Round, error) {
	if !t.Valid() {
		return Round{}, ErrUnknownRoundType
	}
	r := Round{roundType: t, scores: make(map[PlayerID]RoundScore, len(scores)), locked: locked}
	for id, rs := range scores {
		if id.IsZero() {
			return Round{}, ErrEmptyPlayerID
		}
		if rs == nil {
			rs = Pending{}
		}
		r.scores[id] = rs
	}
	return r, nil
}

func (r Round) Type() RoundType { return r.roundType }

func (r Round) IsLocked() bool { return r.locked }

// Score returns the stored score for id; Pending when absent.
func (r Round) Score(id PlayerID) RoundScore {
	if rs, ok := r.scores[id]; ok {
		return rs
	}
	return Pending{}
}

// Scores returns a copy of the stored entries.
func (r Round) Scores() map[PlayerID]RoundScore {
	return maps.Clone(r.scores)
}

// SetScore returns a copy of r with id's score replaced.
func (r Round) SetScore(id PlayerID, rs RoundScore) (Round, error) {
	if r.locked {
		return Round{}, ErrRoundLocked
	}
	next := r.withScores()
	next.scores[id] = rs
	return next, nil
}

// ClearScore returns a copy of r without an entry for id.
func (r Round) ClearScore(id PlayerID) (Round, error) {
	if r.locked {
		return Round{}, ErrRoundLocked
	}
	next := r.withScores()
	delete(next.scores, id)
	return next, nil
}

func (r Round) Lock() Round {
	next := r.withScores()
	next.locked = true
	return next
}

func (r Round) Unlock() Round {
	next := r.withScores()
	next.locked = false
	return next
}

func (r Round) withScores() Round {
	r.scores = maps.Clone(r.scores)
	if r.scores == nil {
		r.scores = map[PlayerID]RoundScore{}
	}
	return r
}
