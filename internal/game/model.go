package game

import (
	"github.com/merev/gsr-api/internal/codec"
	"github.com/merev/gsr-api/internal/domain"
)

// GameState is the response body for every endpoint that returns the game.
type GameState struct {
	codec.GameDTO
	Totals       map[string]int `json:"totals"`
	CurrentRound int            `json:"currentRound"` // -1 once every round has a score
}

func newGameState(g *domain.Game) GameState {
	totals := make(map[string]int)
	for id, total := range domain.CalculatePlayerTotals(g) {
		totals[id.String()] = total
	}
	return GameState{
		GameDTO:      codec.ToDTO(g),
		Totals:       totals,
		CurrentRound: domain.FindFirstEmptyRoundIndex(g),
	}
}

// StartGameRequest is the body we expect on POST /api/game.
type StartGameRequest struct {
	Players []string `json:"players"` // player names in seat order
}

// SetScoreRequest is the body of PUT /api/game/rounds/{round}/scores/{playerID}.
type SetScoreRequest struct {
	Score *int `json:"score"`
}

type SkipRequest struct {
	PlayerID  string `json:"playerId"`
	AllFuture bool   `json:"allFuture"`
}

type UnskipRequest struct {
	PlayerID string `json:"playerId"`
}

// ImportRequest carries a share URL or a bare share token.
type ImportRequest struct {
	Data string `json:"data"`
}

type ShareResponse struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

type RankingResponse struct {
	PlayerID         string `json:"playerId"`
	PlayerName       string `json:"playerName"`
	Rank             int    `json:"rank"`
	Total            int    `json:"total"`
	RoundsPlayed     int    `json:"roundsPlayed"`
	HasSkippedRounds bool   `json:"hasSkippedRounds"`
}

type StandingsResponse struct {
	Rankings          []RankingResponse `json:"rankings"`
	CurrentRound      int               `json:"currentRound"`
	FirstInvalidRound int               `json:"firstInvalidRound"`
	IsEnded           bool              `json:"isEnded"`
}

func newStandingsResponse(s *Standings) StandingsResponse {
	out := StandingsResponse{
		Rankings:          make([]RankingResponse, 0, len(s.Rankings)),
		CurrentRound:      s.CurrentRound,
		FirstInvalidRound: s.FirstInvalidRound,
		IsEnded:           s.IsEnded,
	}
	for _, r := range s.Rankings {
		out.Rankings = append(out.Rankings, RankingResponse{
			PlayerID:         r.PlayerID.String(),
			PlayerName:       r.PlayerName,
			Rank:             r.Rank,
			Total:            r.Total,
			RoundsPlayed:     r.RoundsPlayed,
			HasSkippedRounds: r.HasSkippedRounds,
		})
	}
	return out
}

type RoundResultResponse struct {
	RoundIndex int    `json:"roundIndex"`
	RoundName  string `json:"roundName"`
	Score      int    `json:"score"`
	IsWin      bool   `json:"isWin"`
}

type PlayerStatsResponse struct {
	PlayerID      string                `json:"playerId"`
	PlayerName    string                `json:"playerName"`
	TotalScore    int                   `json:"totalScore"`
	RoundsPlayed  int                   `json:"roundsPlayed"`
	RoundsSkipped int                   `json:"roundsSkipped"`
	RoundsWon     int                   `json:"roundsWon"`
	WinRate       float64               `json:"winRate"`
	AverageScore  float64               `json:"averageScore"`
	BestRound     *RoundResultResponse  `json:"bestRound"`
	WorstRound    *RoundResultResponse  `json:"worstRound"`
	RoundResults  []RoundResultResponse `json:"roundResults"`
}

func newPlayerStatsResponse(s *domain.PlayerStats) PlayerStatsResponse {
	out := PlayerStatsResponse{
		PlayerID:      s.PlayerID.String(),
		PlayerName:    s.PlayerName,
		TotalScore:    s.TotalScore,
		RoundsPlayed:  s.RoundsPlayed,
		RoundsSkipped: s.RoundsSkipped,
		RoundsWon:     s.RoundsWon,
		WinRate:       s.WinRate,
		AverageScore:  s.AverageScore,
		BestRound:     roundResultResponse(s.BestRound),
		WorstRound:    roundResultResponse(s.WorstRound),
		RoundResults:  make([]RoundResultResponse, 0, len(s.RoundResults)),
	}
	for i := range s.RoundResults {
		out.RoundResults = append(out.RoundResults, *roundResultResponse(&s.RoundResults[i]))
	}
	return out
}

func roundResultResponse(r *domain.RoundResult) *RoundResultResponse {
	if r == nil {
		return nil
	}
	return &RoundResultResponse{
		RoundIndex: r.RoundIndex,
		RoundName:  r.RoundName,
		Score:      r.Score,
		IsWin:      r.IsWin,
	}
}

// ErrorResponse is written for every failed request.
type ErrorResponse struct {
	Error    string              `json:"error"`
	Reason   string              `json:"reason,omitempty"`
	Kind     string              `json:"kind,omitempty"`
	Feedback map[string][]string `json:"feedback,omitempty"`
}
