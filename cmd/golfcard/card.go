package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func newCardCommand() *cli.Command {
	return &cli.Command{
		Name:  "card",
		Usage: "print the scorecard of a saved round",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "round", Usage: "round JSON file", Required: true},
		},
		Action: func(c *cli.Context) error {
			round, err := readRoundFile(c.String("round"))
			if err != nil {
				return err
			}
			return printScorecard(c.App.Writer, round)
		},
	}
}

func readRoundFile(path string) (*rounddomain.Round, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read round file: %w", err)
	}
	var round rounddomain.Round
	if err := json.Unmarshal(data, &round); err != nil {
		return nil, fmt.Errorf("failed to decode round file: %w", err)
	}
	if len(round.Holes) == 0 {
		return nil, fmt.Errorf("round %q has no holes", round.ID)
	}
	return &round, nil
}

func printScorecard(w io.Writer, round *rounddomain.Round) error {
	card := rounddomain.BuildScorecard(round)

	title := fmt.Sprintf("%s  %s  (%s)", round.Course.Name, round.Date.Format("2006-01-02"), card.Mode)
	fmt.Fprintln(w, pterm.DefaultSection.Sprint(title))

	table, err := pterm.DefaultTable.WithHasHeader().WithData(scorecardTable(card, round.Holes)).Srender()
	if err != nil {
		return fmt.Errorf("failed to render scorecard: %w", err)
	}
	fmt.Fprintln(w, table)

	if len(card.Classification) > 0 {
		table, err := pterm.DefaultTable.WithHasHeader().WithData(classificationTable(card)).Srender()
		if err != nil {
			return fmt.Errorf("failed to render classification: %w", err)
		}
		fmt.Fprintln(w, pterm.DefaultSection.WithLevel(2).Sprint("Classification"))
		fmt.Fprintln(w, table)
	}

	if card.Match != nil {
		fmt.Fprintln(w, pterm.Info.Sprintf("Match: %s", card.Match.Status))
	}
	return nil
}

// scorecardTable lays out one row per player; unconfirmed holes are blank.
func scorecardTable(card rounddomain.Scorecard, holes []rounddomain.Hole) pterm.TableData {
	header := []string{"Player"}
	par := []string{"Par"}
	for _, h := range holes {
		header = append(header, strconv.Itoa(h.Number))
		par = append(par, strconv.Itoa(h.Par))
	}
	header = append(header, "Out", "In", "Total", "Pts")
	par = append(par, "", "", "", "")

	data := pterm.TableData{header, par}
	for _, pc := range card.Players {
		row := []string{fmt.Sprintf("%s (%d)", pc.Name, pc.PlayingHandicap)}
		lines := make(map[int]rounddomain.HoleLine, len(pc.Holes))
		for _, l := range pc.Holes {
			lines[l.Hole] = l
		}
		for _, h := range holes {
			if l, ok := lines[h.Number]; ok && l.Confirmed {
				row = append(row, strconv.Itoa(l.Strokes))
			} else {
				row = append(row, "")
			}
		}
		row = append(row,
			strconv.Itoa(pc.Out.Strokes),
			strconv.Itoa(pc.In.Strokes),
			strconv.Itoa(pc.Total.Strokes),
			pointsLabel(card.Mode, pc),
		)
		data = append(data, row)
	}
	return data
}

func classificationTable(card rounddomain.Scorecard) pterm.TableData {
	data := pterm.TableData{{"Pos", "Player", "Value", "Gap"}}
	for _, s := range card.Classification {
		data = append(data, []string{
			strconv.Itoa(s.Position),
			s.Name,
			formatValue(s.Value),
			formatValue(s.Gap),
		})
	}
	return data
}

func pointsLabel(mode rounddomain.GameMode, pc rounddomain.PlayerCard) string {
	if mode == rounddomain.ModeSindicato {
		return formatValue(pc.Total.Sindicato)
	}
	return strconv.Itoa(pc.Total.Points)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
