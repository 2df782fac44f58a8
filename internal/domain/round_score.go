package domain

// RoundScoreKind discriminates the RoundScore variants.
type RoundScoreKind string

const (
	KindPending RoundScoreKind = "pending"
	KindEntered RoundScoreKind = "entered"
	KindSkipped RoundScoreKind = "skipped"
)

// RoundScore is the state of one player in one round. The set of
// implementations is closed: Pending, Entered and Skipped.
type RoundScore interface {
	Kind() RoundScoreKind
	sealedRoundScore()
}

// Pending means no value has been entered yet.
type Pending struct{}

// Entered carries a recorded score.
type Entered struct {
	Score Score
}

// Skipped means the player sits out the round.
type Skipped struct{}

func (Pending) Kind() RoundScoreKind { return KindPending }
func (Entered) Kind() RoundScoreKind { return KindEntered }
func (Skipped) Kind() RoundScoreKind { return KindSkipped }

func (Pending) sealedRoundScore() {}
func (Entered) sealedRoundScore() {}
func (Skipped) sealedRoundScore() {}

// EnteredValue returns the score when rs is Entered.
func EnteredValue(rs RoundScore) (Score, bool) {
	e, ok := rs.(Entered)
	if !ok {
		return Score{}, false
	}
	return e.Score, true
}

// IsSkipped reports whether rs is Skipped.
func IsSkipped(rs RoundScore) bool {
	_, ok := rs.(Skipped)
	return ok
}
