package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyFeedback(t *testing.T) {
	var zero Feedback
	assert.False(t, zero.HasFeedback())
	assert.False(t, Empty().HasFeedback())
	assert.Nil(t, Empty().Get("anything"))
	assert.Empty(t, Empty().Fields())
}

func TestForDropsEmptyMessages(t *testing.T) {
	fb := For("score", "", "")
	assert.False(t, fb.HasFeedback())

	fb = For("score", "", "Score must be at least 0")
	assert.True(t, fb.HasFeedback())
	assert.Equal(t, []string{"Score must be at least 0"}, fb.Get("score"))
}

func TestAddIsCopyOnWrite(t *testing.T) {
	base := For("players", "a")
	next := base.Add("players", "b")

	assert.Equal(t, []string{"a"}, base.Get("players"))
	assert.Equal(t, []string{"a", "b"}, next.Get("players"))
}

func TestMergeKeepsFieldOrderAndAllMessages(t *testing.T) {
	a := For("players", "one").Add("game", "g1")
	b := For("players", "two").Add("score", "s1")

	merged := a.Merge(b)

	assert.Equal(t, []string{"players", "game", "score"}, merged.Fields())
	assert.Equal(t, []string{"one", "two"}, merged.Get("players"))
	assert.Equal(t, []string{"g1"}, merged.Get("game"))
	assert.Equal(t, []string{"s1"}, merged.Get("score"))
	// inputs untouched
	assert.Equal(t, []string{"one"}, a.Get("players"))
}

func TestGetReturnsCopy(t *testing.T) {
	fb := For("round", "x")
	got := fb.Get("round")
	got[0] = "mutated"
	assert.Equal(t, []string{"x"}, fb.Get("round"))
}

func TestMarshalJSON(t *testing.T) {
	fb := For("score", "Score must be at most 300", "Score must be divisible by 5")
	data, err := json.Marshal(fb)
	require.NoError(t, err)

	var decoded map[string][]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, map[string][]string{
		"score": {"Score must be at most 300", "Score must be divisible by 5"},
	}, decoded)
}

func TestValidationErrorMatching(t *testing.T) {
	errLocked := errors.New("round locked")
	err := fmt.Errorf("set score: %w", NewValidationError(errLocked, For("round", "Round is locked")))

	assert.ErrorIs(t, err, errLocked)

	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Round is locked"}, ve.Feedback.Get("round"))
	assert.Contains(t, err.Error(), "round: Round is locked")
}

func TestValidationErrorDefaultReason(t *testing.T) {
	err := NewValidationError(nil, For("players", "At least 2 players required"))
	assert.ErrorIs(t, err, ErrValidation)

	_, ok := AsValidation(errors.New("plain"))
	assert.False(t, ok)
}
