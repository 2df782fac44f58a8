package codec

// GameDTO is the persisted and shared JSON shape of a game.
type GameDTO struct {
	Players []PlayerDTO `json:"players"`
	Rounds  []RoundDTO  `json:"rounds"`
	IsEnded bool        `json:"isEnded"`
}

type PlayerDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SkipFromRound *int   `json:"skipFromRound"` // null when not skipping
}

type RoundDTO struct {
	Type     string                   `json:"type"`
	Scores   map[string]RoundScoreDTO `json:"scores"`
	IsLocked bool                     `json:"isLocked"`
}

// RoundScoreDTO carries Value only for entered scores.
type RoundScoreDTO struct {
	Type  string `json:"type"`
	Value *int   `json:"value,omitempty"`
}

// Shape structs mirror the DTOs with pointer fields so absent keys are
// distinguishable from zero values.
type gameShape struct {
	Players *[]playerShape `json:"players"`
	Rounds  *[]roundShape  `json:"rounds"`
	IsEnded *bool          `json:"isEnded"`
}

type playerShape struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

type roundShape struct {
	Type     *string                      `json:"type"`
	Scores   *map[string]*roundScoreShape `json:"scores"`
	IsLocked *bool                        `json:"isLocked"`
}

type roundScoreShape struct {
	Type  *string `json:"type"`
	Value *int    `json:"value"`
}
