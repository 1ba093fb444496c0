package roundexport

import (
	"fmt"
	"io"
	"strconv"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	"github.com/xuri/excelize/v2"
)

const (
	ScorecardSheet      = "Scorecard"
	ClassificationSheet = "Classification"
)

// WriteScorecardXLSX writes the round's scorecard as a workbook. Unconfirmed
// holes are left blank.
func WriteScorecardXLSX(w io.Writer, card rounddomain.Scorecard, holes []rounddomain.Hole) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), ScorecardSheet); err != nil {
		return fmt.Errorf("failed to name scorecard sheet: %w", err)
	}

	rows := scorecardRows(card, holes)
	if err := writeRows(f, ScorecardSheet, rows); err != nil {
		return err
	}

	if len(card.Classification) > 0 {
		if _, err := f.NewSheet(ClassificationSheet); err != nil {
			return fmt.Errorf("failed to create classification sheet: %w", err)
		}
		if err := writeRows(f, ClassificationSheet, classificationRows(card)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func scorecardRows(card rounddomain.Scorecard, holes []rounddomain.Hole) [][]any {
	header := []any{"Hole"}
	par := []any{"Par"}
	rank := []any{"HCP"}
	for _, h := range holes {
		header = append(header, h.Number)
		par = append(par, h.Par)
		rank = append(rank, h.HandicapRank)
	}
	header = append(header, "Out", "In", "Total", "Points")

	rows := [][]any{header, par, rank}
	for _, pc := range card.Players {
		strokes := []any{playerLabel(pc)}
		points := []any{pc.Name + " pts"}
		for _, line := range pc.Holes {
			if !line.Confirmed {
				strokes = append(strokes, "")
				points = append(points, "")
				continue
			}
			strokes = append(strokes, line.Strokes)
			if card.Mode == rounddomain.ModeSindicato {
				points = append(points, line.Sindicato)
			} else {
				points = append(points, line.Points)
			}
		}
		strokes = append(strokes, pc.Out.Strokes, pc.In.Strokes, pc.Total.Strokes, pc.Total.Points)
		if card.Mode == rounddomain.ModeSindicato {
			points = append(points, "", "", "", pc.Total.Sindicato)
		}
		rows = append(rows, strokes, points)
	}

	if card.Match != nil {
		rows = append(rows, []any{}, []any{"Match", card.Match.Status})
	}
	return rows
}

func classificationRows(card rounddomain.Scorecard) [][]any {
	rows := [][]any{{"Pos", "Player", "Value", "Gap"}}
	for _, s := range card.Classification {
		rows = append(rows, []any{s.Position, s.Name, s.Value, s.Gap})
	}
	return rows
}

func playerLabel(pc rounddomain.PlayerCard) string {
	if pc.PlayingHandicap == 0 {
		return pc.Name
	}
	return pc.Name + " (" + strconv.Itoa(pc.PlayingHandicap) + ")"
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return err
		}
		cells := row
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", idx+1, sheet, err)
		}
	}
	return nil
}
