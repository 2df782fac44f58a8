package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, names ...string) *Game {
	t.Helper()
	g, err := NewGame(names)
	require.NoError(t, err)
	return g
}

func playerByName(t *testing.T, g *Game, name string) Player {
	t.Helper()
	for _, p := range g.Players() {
		if p.Name() == name {
			return p
		}
	}
	t.Fatalf("no player named %q", name)
	return Player{}
}

// withScores records entered values (or -1 for skipped) in roundIndex.
func withScores(t *testing.T, g *Game, roundIndex int, scores map[string]int) *Game {
	t.Helper()
	round, err := g.Round(roundIndex)
	require.NoError(t, err)
	for name, v := range scores {
		p := playerByName(t, g, name)
		var rs RoundScore = Skipped{}
		if v >= 0 {
			s, err := NewScore(v)
			require.NoError(t, err)
			rs = Entered{Score: s}
		}
		round, err = round.SetScore(p.ID(), rs)
		require.NoError(t, err)
	}
	g, err = g.UpdateRound(roundIndex, round)
	require.NoError(t, err)
	return g
}

func cascadeFrom(t *testing.T, g *Game, name string, roundIndex int) *Game {
	t.Helper()
	p := playerByName(t, g, name)
	g, err := g.UpdatePlayer(p.ID(), func(p Player) Player { return p.SkipFrom(roundIndex) })
	require.NoError(t, err)
	return g
}

func lockRound(t *testing.T, g *Game, roundIndex int) *Game {
	t.Helper()
	round, err := g.Round(roundIndex)
	require.NoError(t, err)
	g, err = g.UpdateRound(roundIndex, round.Lock())
	require.NoError(t, err)
	return g
}

func intPtr(v int) *int { return &v }
