package report

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/merev/gsr-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func scoredGame(t *testing.T) *domain.Game {
	t.Helper()
	g, err := domain.NewGame([]string{"Alice", "Bob"})
	require.NoError(t, err)
	alice, bob := g.Players()[0], g.Players()[1]

	round, err := g.Round(0)
	require.NoError(t, err)
	fifteen, err := domain.NewScore(15)
	require.NoError(t, err)
	round, err = round.SetScore(alice.ID(), domain.Entered{Score: domain.ZeroScore()})
	require.NoError(t, err)
	round, err = round.SetScore(bob.ID(), domain.Entered{Score: fifteen})
	require.NoError(t, err)
	g, err = g.UpdateRound(0, round)
	require.NoError(t, err)

	g, err = g.UpdatePlayer(bob.ID(), func(p domain.Player) domain.Player { return p.SkipFrom(5) })
	require.NoError(t, err)
	return g
}

func TestScorecard(t *testing.T) {
	data, err := Scorecard(scoredGame(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ScorecardSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Player", "2B", "1B1R", "2R", "2B1R", "2R1B", "3B", "3R+", "Total", "Rank"}, rows[0])

	alice := rows[1]
	assert.Equal(t, "Alice", alice[0])
	assert.Equal(t, "0", alice[1])
	assert.Equal(t, "", alice[2])

	bob, err := f.GetCellValue(ScorecardSheet, "G3")
	require.NoError(t, err)
	assert.Equal(t, "skip", bob)
	total, err := f.GetCellValue(ScorecardSheet, "I3")
	require.NoError(t, err)
	assert.Equal(t, "15", total)
	rank, err := f.GetCellValue(ScorecardSheet, "J2")
	require.NoError(t, err)
	assert.Equal(t, "1", rank)
}

func TestCumulativeChart(t *testing.T) {
	data, err := CumulativeChart(scoredGame(t))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestCumulativeChartEmptyGame(t *testing.T) {
	g, err := domain.NewGame([]string{"Alice", "Bob"})
	require.NoError(t, err)

	data, err := CumulativeChart(g)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
