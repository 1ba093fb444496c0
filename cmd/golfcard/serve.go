package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/golfcard/app"
	"github.com/urfave/cli/v2"
)

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			obs, err := initObservability(ctx, cfg, os.Stdout)
			if err != nil {
				return fmt.Errorf("failed to initialize observability: %w", err)
			}
			defer func() {
				if err := obs.Shutdown(c.Context); err != nil {
					obs.Logger.Error("Failed to flush telemetry", "error", err)
				}
			}()

			application, err := app.NewApp(ctx, cfg, obs)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			if err := application.Run(ctx); err != nil {
				return err
			}
			obs.Logger.Info("Application shut down gracefully")
			return nil
		},
	}
}
