// Package report renders finished or in-progress games for export.
package report

import (
	"bytes"
	"fmt"

	"github.com/merev/gsr-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	ScorecardSheet = "Scorecard"
	skipMarker     = "skip"
)

// Scorecard returns an XLSX workbook with one row per player in seat
// order, one column per round, then the total and current rank.
func Scorecard(g *domain.Game) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ScorecardSheet); err != nil {
		return nil, err
	}

	header := []any{"Player"}
	for _, rt := range domain.AllRoundTypes() {
		header = append(header, rt.Abbreviation())
	}
	header = append(header, "Total", "Rank")
	if err := f.SetSheetRow(ScorecardSheet, "A1", &header); err != nil {
		return nil, err
	}

	ranks := make(map[domain.PlayerID]domain.PlayerRanking)
	for _, r := range domain.CalculateRankings(g) {
		ranks[r.PlayerID] = r
	}

	for i, p := range g.Players() {
		row := []any{p.Name()}
		for ri := range g.Rounds() {
			switch rs := g.EffectiveScore(ri, p).(type) {
			case domain.Entered:
				row = append(row, rs.Score.Value())
			case domain.Skipped:
				row = append(row, skipMarker)
			default:
				row = append(row, nil)
			}
		}
		r := ranks[p.ID()]
		row = append(row, r.Total, r.Rank)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(ScorecardSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := styleHeader(f, len(header)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func styleHeader(f *excelize.File, columns int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ScorecardSheet, "A1", last, style); err != nil {
		return err
	}
	return f.SetColWidth(ScorecardSheet, "A", "A", 18)
}
