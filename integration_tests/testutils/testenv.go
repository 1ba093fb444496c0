package testutils

import (
	"context"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/Black-And-White-Club/golfcard/app"
	roundmigrations "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/golfcard/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// TestEnvironment holds a migrated Postgres instance shared by a test package.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	DSN           string
	DB            *bun.DB
}

// NewTestEnvironment starts Postgres and applies the round migrations.
func NewTestEnvironment(t *testing.T) (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())

	pgContainer, dsn, err := containers.StartPostgres(ctx, containers.DefaultPostgresOptions())
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}

	env := &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		PgContainer:   pgContainer,
		DSN:           dsn,
		DB:            app.OpenDB(dsn),
	}

	if err := env.DB.PingContext(ctx); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := RunMigrations(ctx, env.DB); err != nil {
		env.Cleanup()
		return nil, err
	}
	return env, nil
}

// RunMigrations initialises the migration tables and migrates to the latest group.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, roundmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to run round migrations: %w", err)
	}
	log.Printf("Round migrations applied: %s", group)
	return nil
}

// ResetDatabase removes every stored round.
func (env *TestEnvironment) ResetDatabase(ctx context.Context) error {
	return TruncateTables(ctx, env.DB, "rounds")
}

// TruncateTables truncates the specified tables
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	query := "TRUNCATE TABLE " + strings.Join(tables, ", ") + " CASCADE"
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate %v: %w", tables, err)
	}
	return nil
}

// Cleanup closes the database and terminates the container.
func (env *TestEnvironment) Cleanup() {
	if env.DB != nil {
		if err := env.DB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(context.Background()); err != nil {
			log.Printf("Error terminating postgres container: %v", err)
		}
	}
	if env.CancelContext != nil {
		env.CancelContext()
	}
}
