package domain

import "fmt"

// RoundType is one of the seven contracts played, in this fixed order.
type RoundType int

const (
	TwoBooks RoundType = iota
	OneBookOneRun
	TwoRuns
	TwoBooksOneRun
	TwoRunsOneBook
	ThreeBooks
	ThreeRunsAndOut
)

// RoundCount is the number of rounds in every game.
const RoundCount = 7

type roundTypeInfo struct {
	name         string
	displayName  string
	abbreviation string
}

var roundTypes = [RoundCount]roundTypeInfo{
	TwoBooks:        {"twoBooks", "2 Books", "2B"},
	OneBookOneRun:   {"oneBookOneRun", "1 Book 1 Run", "1B1R"},
	TwoRuns:         {"twoRuns", "2 Runs", "2R"},
	TwoBooksOneRun:  {"twoBooksOneRun", "2 Books 1 Run", "2B1R"},
	TwoRunsOneBook:  {"twoRunsOneBook", "2 Runs 1 Book", "2R1B"},
	ThreeBooks:      {"threeBooks", "3 Books", "3B"},
	ThreeRunsAndOut: {"threeRunsAndOut", "3 Runs and Out", "3R+"},
}

// AllRoundTypes returns every round type in play order.
func AllRoundTypes() []RoundType {
	out := make([]RoundType, RoundCount)
	for i := range out {
		out[i] = RoundType(i)
	}
	return out
}

// ParseRoundType resolves a round type from its identifier, e.g. "twoRuns".
func ParseRoundType(name string) (RoundType, error) {
	for i, info := range roundTypes {
		if info.name == name {
			return RoundType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRoundType, name)
}

func (t RoundType) Valid() bool { return t >= TwoBooks && t <= ThreeRunsAndOut }

// Name is the stable identifier used in serialized games.
func (t RoundType) Name() string { return t.info().name }

func (t RoundType) DisplayName() string { return t.info().displayName }

func (t RoundType) Abbreviation() string { return t.info().abbreviation }

func (t RoundType) String() string { return t.Name() }

func (t RoundType) info() roundTypeInfo {
	if !t.Valid() {
		return roundTypeInfo{name: fmt.Sprintf("RoundType(%d)", int(t))}
	}
	return roundTypes[t]
}
