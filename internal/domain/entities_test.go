package domain

import (
	"testing"

	"github.com/merev/gsr-api/internal/feedback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayer(t *testing.T) {
	p, err := NewPlayer("  Alice ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name())
	assert.False(t, p.ID().IsZero())
	_, skipping := p.SkipFromRound()
	assert.False(t, skipping)

	_, err = NewPlayer("   ")
	assert.ErrorIs(t, err, ErrEmptyPlayerName)
}

func TestPlayerSkipCascade(t *testing.T) {
	p, err := NewPlayer("Charlie")
	require.NoError(t, err)

	skipped := p.SkipFrom(2)
	assert.False(t, p.IsSkippedAt(2), "receiver must be untouched")

	assert.False(t, skipped.IsSkippedAt(0))
	assert.False(t, skipped.IsSkippedAt(1))
	for i := 2; i < RoundCount; i++ {
		assert.True(t, skipped.IsSkippedAt(i))
	}
	from, ok := skipped.SkipFromRound()
	assert.True(t, ok)
	assert.Equal(t, 2, from)

	cleared := skipped.ClearSkip()
	assert.False(t, cleared.IsSkippedAt(6))
	assert.Equal(t, p.ID(), cleared.ID())
}

func TestHydratePlayer(t *testing.T) {
	id, err := NewPlayerID("p-1")
	require.NoError(t, err)

	p, err := HydratePlayer(id, "Bob", intPtr(3))
	require.NoError(t, err)
	assert.True(t, p.IsSkippedAt(3))

	_, err = HydratePlayer(id, "", nil)
	assert.ErrorIs(t, err, ErrEmptyPlayerName)
	_, err = HydratePlayer(PlayerID{}, "Bob", nil)
	assert.ErrorIs(t, err, ErrEmptyPlayerID)
	_, err = HydratePlayer(id, "Bob", intPtr(7))
	assert.ErrorIs(t, err, ErrInvalidRoundIndex)
}

func TestRoundSetScoreAndLock(t *testing.T) {
	id := GeneratePlayerID()
	r := NewRound(TwoRuns)
	assert.Equal(t, Pending{}, r.Score(id))

	updated, err := r.SetScore(id, Skipped{})
	require.NoError(t, err)
	assert.Equal(t, Skipped{}, updated.Score(id))
	assert.Equal(t, Pending{}, r.Score(id), "receiver must be untouched")

	locked := updated.Lock()
	assert.True(t, locked.IsLocked())
	assert.False(t, updated.IsLocked())

	_, err = locked.SetScore(id, Pending{})
	assert.ErrorIs(t, err, ErrRoundLocked)
	_, err = locked.ClearScore(id)
	assert.ErrorIs(t, err, ErrRoundLocked)

	unlocked := locked.Unlock()
	cleared, err := unlocked.ClearScore(id)
	require.NoError(t, err)
	assert.Empty(t, cleared.Scores())
	assert.Len(t, unlocked.Scores(), 1)
}

func TestRoundScoresReturnsCopy(t *testing.T) {
	id := GeneratePlayerID()
	r, err := NewRound(TwoBooks).SetScore(id, Skipped{})
	require.NoError(t, err)

	scores := r.Scores()
	delete(scores, id)
	assert.Equal(t, Skipped{}, r.Score(id))
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, "Alice", "Bob")

	require.Len(t, g.Players(), 2)
	assert.Equal(t, "Alice", g.Players()[0].Name())
	assert.Equal(t, "Bob", g.Players()[1].Name())
	require.Len(t, g.Rounds(), RoundCount)
	for i, r := range g.Rounds() {
		assert.Equal(t, RoundType(i), r.Type())
		assert.False(t, r.IsLocked())
		assert.Empty(t, r.Scores())
	}
	assert.False(t, g.IsEnded())
}

func TestNewGameRejectsInvalidNames(t *testing.T) {
	_, err := NewGame([]string{"Solo"})
	ve, ok := feedback.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"At least 2 players required"}, ve.Feedback.Get(FieldPlayers))
}

func TestGameCopyOnWrite(t *testing.T) {
	g := newTestGame(t, "Alice", "Bob")
	next := withScores(t, g, 0, map[string]int{"Alice": 0})

	alice := playerByName(t, g, "Alice")
	first, err := g.Round(0)
	require.NoError(t, err)
	assert.Equal(t, Pending{}, first.Score(alice.ID()))

	nextFirst, err := next.Round(0)
	require.NoError(t, err)
	_, ok := EnteredValue(nextFirst.Score(alice.ID()))
	assert.True(t, ok)

	ended := next.End()
	assert.True(t, ended.IsEnded())
	assert.False(t, next.IsEnded())
	assert.False(t, ended.Reopen().IsEnded())
	assert.True(t, ended.IsEnded())
}

func TestGameUpdateRoundGuards(t *testing.T) {
	g := newTestGame(t, "Alice", "Bob")

	_, err := g.UpdateRound(7, NewRound(TwoBooks))
	assert.ErrorIs(t, err, ErrInvalidRoundIndex)
	_, err = g.UpdateRound(-1, NewRound(TwoBooks))
	assert.ErrorIs(t, err, ErrInvalidRoundIndex)
	_, err = g.UpdateRound(0, NewRound(ThreeBooks))
	assert.ErrorIs(t, err, ErrRoundSequence)
	_, err = g.Round(9)
	assert.ErrorIs(t, err, ErrInvalidRoundIndex)
}

func TestGameUpdatePlayerKeepsIdentity(t *testing.T) {
	g := newTestGame(t, "Alice", "Bob")
	bob := playerByName(t, g, "Bob")

	next, err := g.UpdatePlayer(bob.ID(), func(p Player) Player {
		return Player{name: "Mallory"}.SkipFrom(4)
	})
	require.NoError(t, err)

	updated, err := next.Player(bob.ID())
	require.NoError(t, err)
	assert.Equal(t, "Bob", updated.Name())
	assert.True(t, updated.IsSkippedAt(4))

	_, err = g.UpdatePlayer(GeneratePlayerID(), func(p Player) Player { return p })
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestHydrateGame(t *testing.T) {
	g := newTestGame(t, "Alice", "Bob")

	rebuilt, err := HydrateGame(g.Players(), g.Rounds(), true)
	require.NoError(t, err)
	assert.True(t, rebuilt.IsEnded())

	_, err = HydrateGame(g.Players(), g.Rounds()[:6], false)
	assert.ErrorIs(t, err, ErrRoundSequence)

	swapped := g.Rounds()
	swapped[0], swapped[1] = swapped[1], swapped[0]
	_, err = HydrateGame(g.Players(), swapped, false)
	assert.ErrorIs(t, err, ErrRoundSequence)

	dup := append(g.Players(), g.Players()[0])
	_, err = HydrateGame(dup, g.Rounds(), false)
	assert.ErrorIs(t, err, ErrDuplicatePlayerID)
}

func TestEffectiveScoreHonoursCascade(t *testing.T) {
	g := newTestGame(t, "Alice", "Bob")
	g = withScores(t, g, 3, map[string]int{"Bob": 40})
	g = cascadeFrom(t, g, "Bob", 2)
	bob := playerByName(t, g, "Bob")

	assert.Equal(t, Pending{}, g.EffectiveScore(1, bob))
	assert.Equal(t, Skipped{}, g.EffectiveScore(2, bob))
	assert.Equal(t, Skipped{}, g.EffectiveScore(3, bob))
}
