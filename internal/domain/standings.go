package domain

import (
	"cmp"
	"slices"
)

// PlayerRanking is one line of the standings table.
type PlayerRanking struct {
	PlayerID         PlayerID
	PlayerName       string
	Rank             int
	Total            int
	RoundsPlayed     int
	HasSkippedRounds bool
}

// CalculatePlayerTotals sums entered scores per player.
func CalculatePlayerTotals(g *Game) map[PlayerID]int {
	totals := make(map[PlayerID]int, len(g.players))
	for _, p := range g.players {
		total := 0
		for i := range g.rounds {
			if s, ok := EnteredValue(g.EffectiveScore(i, p)); ok {
				total += s.Value()
			}
		}
		totals[p.ID()] = total
	}
	return totals
}

// CalculateRankings orders players by rounds played (most first), then by
// total (lowest first). Equal pairs share a rank and the next distinct
// pair takes its 1-based position, e.g. 1, 1, 3.
func CalculateRankings(g *Game) []PlayerRanking {
	rankings := make([]PlayerRanking, 0, len(g.players))
	for _, p := range g.players {
		r := PlayerRanking{PlayerID: p.ID(), PlayerName: p.Name()}
		for i := range g.rounds {
			switch rs := g.EffectiveScore(i, p).(type) {
			case Entered:
				r.Total += rs.Score.Value()
				r.RoundsPlayed++
			case Skipped:
				r.HasSkippedRounds = true
			}
		}
		rankings = append(rankings, r)
	}

	slices.SortStableFunc(rankings, compareStanding)

	for i := range rankings {
		if i > 0 && compareStanding(rankings[i-1], rankings[i]) == 0 {
			rankings[i].Rank = rankings[i-1].Rank
			continue
		}
		rankings[i].Rank = i + 1
	}
	return rankings
}

func compareStanding(a, b PlayerRanking) int {
	if c := cmp.Compare(b.RoundsPlayed, a.RoundsPlayed); c != 0 {
		return c
	}
	return cmp.Compare(a.Total, b.Total)
}
