package main

import (
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/golfcard/app"
	roundmigrations "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/repositories/migrations"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					return migrator.Init(c.Context)
				}),
			},
			{
				Name:  "up",
				Usage: "migrate database",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					if err := migrator.Lock(c.Context); err != nil {
						return err
					}
					defer migrator.Unlock(c.Context) //nolint:errcheck

					group, err := migrator.Migrate(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Fprintln(c.App.Writer, "No new migrations to run")
					} else {
						fmt.Fprintf(c.App.Writer, "Migrated to %s\n", group)
					}
					return nil
				}),
			},
			{
				Name:  "down",
				Usage: "rollback the last migration group",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					if err := migrator.Lock(c.Context); err != nil {
						return err
					}
					defer migrator.Unlock(c.Context) //nolint:errcheck

					group, err := migrator.Rollback(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Fprintln(c.App.Writer, "No groups to roll back")
					} else {
						fmt.Fprintf(c.App.Writer, "Rolled back %s\n", group)
					}
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					ms, err := migrator.MigrationsWithStatus(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Migrations: %s\n", ms)
					fmt.Fprintf(c.App.Writer, "  Applied: %s\n", ms.Applied())
					fmt.Fprintf(c.App.Writer, "  Unapplied: %s\n", ms.Unapplied())
					return nil
				}),
			},
		},
	}
}

func withMigrator(fn func(*cli.Context, *migrate.Migrator) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.Postgres.DSN == "" {
			return errors.New("migrations need DATABASE_URL or postgres.dsn")
		}

		db := app.OpenDB(cfg.Postgres.DSN)
		defer db.Close()

		return fn(c, migrate.NewMigrator(db, roundmigrations.Migrations))
	}
}
