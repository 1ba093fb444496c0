package containers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ImageEnv overrides the Postgres image used by the round store tests.
const ImageEnv = "GOLFCARD_TEST_PG_IMAGE"

// PostgresOptions describe the throwaway round store database.
type PostgresOptions struct {
	Image          string
	Database       string
	User           string
	Password       string
	StartupTimeout time.Duration
}

// DefaultPostgresOptions returns the settings the integration suites use. The
// image can be swapped through ImageEnv.
func DefaultPostgresOptions() PostgresOptions {
	opts := PostgresOptions{
		Image:          "postgres:16-alpine",
		Database:       "golfcard",
		User:           "golfcard",
		Password:       "golfcard",
		StartupTimeout: 45 * time.Second,
	}
	if image := os.Getenv(ImageEnv); image != "" {
		opts.Image = image
	}
	return opts
}

// DSN builds the pgdriver connection string for host and port.
func (o PostgresOptions) DSN(host, port string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", o.User, o.Password, host, port, o.Database)
}

// StartPostgres runs a Postgres container and waits until it accepts pgx
// connections. The returned DSN disables TLS.
func StartPostgres(ctx context.Context, opts PostgresOptions) (*postgres.PostgresContainer, string, error) {
	pg, err := postgres.Run(ctx, opts.Image,
		postgres.WithDatabase(opts.Database),
		postgres.WithUsername(opts.User),
		postgres.WithPassword(opts.Password),
		testcontainers.WithWaitStrategy(
			wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return opts.DSN(host, port.Port())
			}).WithStartupTimeout(opts.StartupTimeout),
		),
	)
	if err != nil {
		if pg != nil {
			_ = pg.Terminate(ctx)
		}
		return nil, "", fmt.Errorf("failed to start postgres %s: %w", opts.Image, err)
	}

	host, err := pg.Host(ctx)
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, "", fmt.Errorf("failed to resolve postgres host: %w", err)
	}
	port, err := pg.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, "", fmt.Errorf("failed to resolve postgres port: %w", err)
	}

	dsn := opts.DSN(host, port.Port())
	slog.InfoContext(ctx, "Round store database ready", slog.String("image", opts.Image), slog.String("host", host), slog.String("port", port.Port()))
	return pg, dsn, nil
}
