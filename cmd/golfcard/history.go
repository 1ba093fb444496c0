package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Black-And-White-Club/golfcard/app"
	roundservice "github.com/Black-And-White-Club/golfcard/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	roundcache "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/cache"
	rounddb "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/repositories"
	roundtime "github.com/Black-And-White-Club/golfcard/app/modules/round/time_utils"
	"github.com/pterm/pterm"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

func newHistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "list saved rounds",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "since", Usage: `only rounds played on or after this date, e.g. "2026-04-01" or "last monday"`},
			&cli.IntFlag{Name: "limit", Usage: "maximum number of rounds"},
		},
		Action: func(c *cli.Context) error {
			since, err := roundtime.NewSinceParser(time.Local).Parse(c.String("since"), time.Now())
			if err != nil {
				return err
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			ctx := c.Context

			obs, err := initObservability(ctx, cfg, os.Stderr)
			if err != nil {
				return fmt.Errorf("failed to initialize observability: %w", err)
			}

			cache, err := roundcache.New(ctx, roundcache.Options{
				Driver:    cfg.Cache.Driver,
				Path:      cfg.Cache.Path,
				RedisAddr: cfg.Cache.RedisAddr,
				RedisDB:   cfg.Cache.RedisDB,
			})
			if err != nil {
				return fmt.Errorf("failed to open round cache: %w", err)
			}
			defer cache.Close()

			var (
				db   *bun.DB
				repo rounddb.Repository
			)
			if cfg.Postgres.DSN != "" {
				db = app.OpenDB(cfg.Postgres.DSN)
				defer db.Close()
				repo = rounddb.NewRepository(db)
			}

			service := roundservice.NewRoundService(repo, cache, nil, obs.Logger, obs.RoundMetrics, obs.Tracer, db, rounddomain.Defaults{
				HandicapPercentage:          cfg.Scoring.DefaultHandicapPercentage,
				SindicatoHandicapPercentage: cfg.Scoring.SindicatoHandicapPercentage,
			})

			result, err := service.LoadHistory(ctx, roundservice.HistoryOptions{Since: since, Limit: c.Int("limit")})
			if err != nil {
				return err
			}
			if result.Warning != nil {
				fmt.Fprintln(c.App.ErrWriter, pterm.Warning.Sprint(result.Warning.Error()))
			}
			return printHistory(c.App.Writer, result)
		},
	}
}

func printHistory(w io.Writer, result roundservice.HistoryResult) error {
	if len(result.Rounds) == 0 {
		fmt.Fprintln(w, pterm.Info.Sprint("No rounds found"))
		return nil
	}

	data := pterm.TableData{{"Date", "Course", "Mode", "Players", "Finished", "Remote ID"}}
	for _, r := range result.Rounds {
		data = append(data, []string{
			r.Date.Format("2006-01-02 15:04"),
			r.Course.Name,
			string(r.Settings.Mode()),
			strconv.Itoa(len(r.Players)),
			strconv.FormatBool(r.IsFinished),
			r.ExternalID,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render history: %w", err)
	}
	fmt.Fprintln(w, table)
	fmt.Fprintf(w, "%d rounds (source: %s)\n", len(result.Rounds), result.Source)
	return nil
}
