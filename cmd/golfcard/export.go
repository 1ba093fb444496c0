package main

import (
	"errors"
	"fmt"
	"os"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	roundexport "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/export"
	"github.com/urfave/cli/v2"
)

func newExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "export a saved round as a spreadsheet or points chart",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "round", Usage: "round JSON file", Required: true},
			&cli.StringFlag{Name: "xlsx", Usage: "write the scorecard workbook to this path"},
			&cli.StringFlag{Name: "chart", Usage: "write the cumulative points chart (PNG) to this path"},
		},
		Action: func(c *cli.Context) error {
			if c.String("xlsx") == "" && c.String("chart") == "" {
				return errors.New("nothing to export: pass --xlsx and/or --chart")
			}
			round, err := readRoundFile(c.String("round"))
			if err != nil {
				return err
			}
			card := rounddomain.BuildScorecard(round)

			if path := c.String("xlsx"); path != "" {
				if err := exportXLSX(path, card, round.Holes); err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
			}
			if path := c.String("chart"); path != "" {
				data, err := roundexport.RenderPointsChart(card, roundexport.DefaultPalette)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("failed to write chart: %w", err)
				}
				fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
			}
			return nil
		},
	}
}

func exportXLSX(path string, card rounddomain.Scorecard, holes []rounddomain.Hole) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	if err := roundexport.WriteScorecardXLSX(f, card, holes); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
