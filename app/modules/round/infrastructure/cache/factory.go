package roundcache

import (
	"context"
	"fmt"
)

// Drivers accepted by New.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Options selects and configures a cache backend.
type Options struct {
	Driver    string
	Path      string
	RedisAddr string
	RedisDB   int
}

// New builds the cache named by opts.Driver. An empty driver selects SQLite.
func New(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Driver {
	case "", DriverSQLite:
		path := opts.Path
		if path == "" {
			path = "golfcard-cache.db"
		}
		return NewSQLiteCache(ctx, path)
	case DriverRedis:
		return NewRedisCache(ctx, opts.RedisAddr, opts.RedisDB, "golfcard")
	case DriverMemory:
		return NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", opts.Driver)
	}
}
