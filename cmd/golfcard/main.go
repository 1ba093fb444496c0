package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/Black-And-White-Club/golfcard/config"
	"github.com/Black-And-White-Club/golfcard/pkg/observability"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "golfcard",
		Usage: "golf round scoring: stableford, stroke play, sindicato and team matches",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"GOLFCARD_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			newServeCommand(),
			newMigrateCommand(),
			newCardCommand(),
			newExportCommand(),
			newHistoryCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	return config.LoadConfig(c.String("config"))
}

// initObservability builds observability for one-shot commands; logs go to
// stderr so table output stays clean.
func initObservability(ctx context.Context, cfg *config.Config, out io.Writer) (*observability.Observability, error) {
	obsCfg := config.ToObsConfig(cfg)
	obsCfg.Output = out
	return observability.Init(ctx, obsCfg)
}
