package domain

// RoundResult is a player's entered score in one round.
type RoundResult struct {
	RoundIndex int
	RoundName  string
	Score      int
	IsWin      bool
}

// PlayerStats summarises one player's game.
type PlayerStats struct {
	PlayerID      PlayerID
	PlayerName    string
	TotalScore    int
	RoundsPlayed  int
	RoundsSkipped int
	RoundsWon     int
	WinRate       float64
	AverageScore  float64
	BestRound     *RoundResult
	WorstRound    *RoundResult
	RoundResults  []RoundResult
}

// CalculatePlayerStats returns nil when id is not in the game.
func CalculatePlayerStats(g *Game, id PlayerID) *PlayerStats {
	p, err := g.Player(id)
	if err != nil {
		return nil
	}

	stats := &PlayerStats{
		PlayerID:     p.ID(),
		PlayerName:   p.Name(),
		RoundResults: []RoundResult{},
	}

	for i, round := range g.rounds {
		switch rs := g.EffectiveScore(i, p).(type) {
		case Entered:
			result := RoundResult{
				RoundIndex: i,
				RoundName:  round.Type().DisplayName(),
				Score:      rs.Score.Value(),
				IsWin:      rs.Score.IsWin(),
			}
			stats.RoundResults = append(stats.RoundResults, result)
			stats.TotalScore += result.Score
			stats.RoundsPlayed++
			if result.IsWin {
				stats.RoundsWon++
			}
		case Skipped:
			stats.RoundsSkipped++
		}
	}

	if stats.RoundsPlayed > 0 {
		stats.WinRate = float64(stats.RoundsWon) / float64(stats.RoundsPlayed)
		stats.AverageScore = float64(stats.TotalScore) / float64(stats.RoundsPlayed)
	}

	var lowest, highest *RoundResult
	for i := range stats.RoundResults {
		r := &stats.RoundResults[i]
		if r.IsWin {
			if stats.BestRound == nil {
				best := *r
				stats.BestRound = &best
			}
			continue
		}
		if lowest == nil || r.Score < lowest.Score {
			lowest = r
		}
		if highest == nil || r.Score > highest.Score {
			highest = r
		}
	}
	if stats.BestRound == nil && lowest != nil {
		best := *lowest
		stats.BestRound = &best
	}
	if highest != nil {
		worst := *highest
		stats.WorstRound = &worst
	}

	return stats
}
