package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScore(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"zero", 0, false},
		{"max", 300, false},
		{"multiple of five", 45, false},
		{"negative", -5, true},
		{"above max", 305, true},
		{"not divisible", 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScore(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidScore)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, s.Value())
		})
	}
}

func TestScoreAgreesWithValidateScore(t *testing.T) {
	for v := -20; v <= 320; v++ {
		_, err := NewScore(v)
		fb := ValidateScore(v)
		assert.Equal(t, err == nil, !fb.HasFeedback(), "value %d", v)
		assert.Equal(t, v%5 == 0 && v >= 0 && v <= 300, !fb.HasFeedback(), "value %d", v)
	}
}

func TestZeroScoreIsWin(t *testing.T) {
	assert.True(t, ZeroScore().IsWin())
	s, err := NewScore(5)
	require.NoError(t, err)
	assert.False(t, s.IsWin())
}

func TestPlayerID(t *testing.T) {
	_, err := NewPlayerID("   ")
	assert.ErrorIs(t, err, ErrEmptyPlayerID)

	a, err := NewPlayerID("abc")
	require.NoError(t, err)
	b, err := NewPlayerID("abc")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "abc", a.String())

	g1, g2 := GeneratePlayerID(), GeneratePlayerID()
	assert.NotEqual(t, g1, g2)
	assert.Len(t, g1.String(), 36)
}

func TestRoundTypes(t *testing.T) {
	all := AllRoundTypes()
	require.Len(t, all, RoundCount)

	wantNames := []string{"twoBooks", "oneBookOneRun", "twoRuns", "twoBooksOneRun", "twoRunsOneBook", "threeBooks", "threeRunsAndOut"}
	wantAbbr := []string{"2B", "1B1R", "2R", "2B1R", "2R1B", "3B", "3R+"}
	for i, rt := range all {
		assert.Equal(t, wantNames[i], rt.Name())
		assert.Equal(t, wantAbbr[i], rt.Abbreviation())

		parsed, err := ParseRoundType(rt.Name())
		require.NoError(t, err)
		assert.Equal(t, rt, parsed)
	}

	assert.Equal(t, "2 Books", TwoBooks.DisplayName())
	assert.Equal(t, "3 Runs and Out", ThreeRunsAndOut.DisplayName())

	_, err := ParseRoundType("fourBooks")
	assert.ErrorIs(t, err, ErrUnknownRoundType)
	assert.False(t, RoundType(7).Valid())
}

func TestRoundScoreVariants(t *testing.T) {
	s, err := NewScore(20)
	require.NoError(t, err)

	assert.Equal(t, KindPending, Pending{}.Kind())
	assert.Equal(t, KindEntered, Entered{Score: s}.Kind())
	assert.Equal(t, KindSkipped, Skipped{}.Kind())

	v, ok := EnteredValue(Entered{Score: s})
	assert.True(t, ok)
	assert.Equal(t, 20, v.Value())

	_, ok = EnteredValue(Skipped{})
	assert.False(t, ok)
	assert.True(t, IsSkipped(Skipped{}))
	assert.False(t, IsSkipped(Pending{}))
}
