package domain

// FindFirstEmptyRoundIndex returns the first round where nobody has an
// entered score, or -1. The UI uses it as the current round cursor.
func FindFirstEmptyRoundIndex(g *Game) int {
	for i := range g.rounds {
		empty := true
		for _, p := range g.players {
			if _, ok := EnteredValue(g.EffectiveScore(i, p)); ok {
				empty = false
				break
			}
		}
		if empty {
			return i
		}
	}
	return -1
}

// FindFirstInvalidRoundIndex returns the first round that is neither fully
// skipped nor complete, or -1.
func FindFirstInvalidRoundIndex(g *Game) int {
	for i, round := range g.rounds {
		if IsRoundFullySkipped(round, i, g.players) {
			continue
		}
		if ValidateRoundCompletion(round, i, g.players).HasFeedback() {
			return i
		}
	}
	return -1
}
