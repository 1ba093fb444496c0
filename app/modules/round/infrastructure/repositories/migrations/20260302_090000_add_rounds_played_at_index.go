package roundmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Adding rounds listing indexes...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_rounds_played_at ON rounds (played_at DESC);
				CREATE INDEX IF NOT EXISTS idx_rounds_local_id ON rounds (local_id);
			`); err != nil {
				return fmt.Errorf("failed to create rounds indexes: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping rounds listing indexes...")

		if _, err := db.ExecContext(ctx, `
			DROP INDEX IF EXISTS idx_rounds_local_id;
			DROP INDEX IF EXISTS idx_rounds_played_at;
		`); err != nil {
			return fmt.Errorf("failed to drop rounds indexes: %w", err)
		}
		return nil
	})
}
