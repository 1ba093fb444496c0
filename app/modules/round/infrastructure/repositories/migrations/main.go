// Package roundmigrations holds the bun migrations for the remote round
// document store.
package roundmigrations

import "github.com/uptrace/bun/migrate"

// Migrations is the round store's migration set, applied by `golfcard migrate`.
var Migrations = migrate.NewMigrations()

func init() {
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
