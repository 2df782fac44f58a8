package report

import (
	"bytes"

	"github.com/merev/gsr-api/internal/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var seriesColors = []drawing.Color{
	drawing.ColorFromHex("2f6f4f"),
	drawing.ColorFromHex("c9a227"),
	drawing.ColorFromHex("3b5ba5"),
	drawing.ColorFromHex("b33f40"),
	drawing.ColorFromHex("6a4c93"),
	drawing.ColorFromHex("1f9aa5"),
	drawing.ColorFromHex("e07a1f"),
	drawing.ColorFromHex("5c5c5c"),
}

// CumulativeChart renders a PNG line chart of each player's running total
// after every round. Point 0 is the start of the game.
func CumulativeChart(g *domain.Game) ([]byte, error) {
	players := g.Players()
	rounds := g.Rounds()

	maxTotal := 0.0
	series := make([]chart.Series, 0, len(players))
	for i, p := range players {
		xs := make([]float64, 0, len(rounds)+1)
		ys := make([]float64, 0, len(rounds)+1)
		xs = append(xs, 0)
		ys = append(ys, 0)

		total := 0
		for ri := range rounds {
			if s, ok := domain.EnteredValue(g.EffectiveScore(ri, p)); ok {
				total += s.Value()
			}
			xs = append(xs, float64(ri+1))
			ys = append(ys, float64(total))
		}
		maxTotal = max(maxTotal, float64(total))

		color := seriesColors[i%len(seriesColors)]
		series = append(series, chart.ContinuousSeries{
			Name:    p.Name(),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3,
			},
		})
	}

	ticks := make([]chart.Tick, 0, len(rounds)+1)
	ticks = append(ticks, chart.Tick{Value: 0, Label: "Start"})
	for ri, r := range rounds {
		ticks = append(ticks, chart.Tick{Value: float64(ri + 1), Label: r.Type().Abbreviation()})
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Round",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(rounds))},
		},
		YAxis: chart.YAxis{
			Name:  "Total",
			Range: &chart.ContinuousRange{Min: 0, Max: max(maxTotal, 10)},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
