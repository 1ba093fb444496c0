package roundmigrations

import (
	"context"
	"fmt"

	rounddb "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating rounds table...")

		_, err := db.NewCreateTable().Model((*rounddb.RoundDocument)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create rounds table: %w", err)
		}

		fmt.Println("Rounds table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back rounds table...")

		_, err := db.NewDropTable().Model((*rounddb.RoundDocument)(nil)).IfExists().Cascade().Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop rounds table: %w", err)
		}

		fmt.Println("Rounds table dropped successfully!")
		return nil
	})
}
