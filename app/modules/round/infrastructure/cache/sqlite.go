package roundcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Entry is one cached document.
type Entry struct {
	bun.BaseModel `bun:"table:cache_entries,alias:ce"`
	Key           string    `bun:"cache_key,pk"`
	Value         string    `bun:"value,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

// SQLiteCache persists documents in a SQLite file through bun.
type SQLiteCache struct {
	db *bun.DB
}

var _ Cache = (*SQLiteCache)(nil)

// NewSQLiteCache opens (creating if needed) the cache database at path.
// Use ":memory:" for a throwaway cache.
func NewSQLiteCache(ctx context.Context, path string) (*SQLiteCache, error) {
	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite cache: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.NewCreateTable().Model((*Entry)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

func (c *SQLiteCache) put(ctx context.Context, key string, data []byte) error {
	entry := &Entry{Key: key, Value: string(data), UpdatedAt: time.Now().UTC()}
	_, err := c.db.NewInsert().
		Model(entry).
		On("CONFLICT (cache_key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

func (c *SQLiteCache) get(ctx context.Context, key string) ([]byte, error) {
	entry := new(Entry)
	err := c.db.NewSelect().Model(entry).Where("cache_key = ?", key).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (c *SQLiteCache) SaveActive(ctx context.Context, round *rounddomain.Round) error {
	data, err := encodeRound(round)
	if err != nil {
		return err
	}
	return c.put(ctx, KeyActiveRound, data)
}

func (c *SQLiteCache) LoadActive(ctx context.Context) (*rounddomain.Round, error) {
	data, err := c.get(ctx, KeyActiveRound)
	if err != nil {
		return nil, err
	}
	return decodeRound(data)
}

func (c *SQLiteCache) ClearActive(ctx context.Context) error {
	_, err := c.db.NewDelete().Model((*Entry)(nil)).Where("cache_key = ?", KeyActiveRound).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear active round: %w", err)
	}
	return nil
}

func (c *SQLiteCache) SaveHistory(ctx context.Context, rounds []*rounddomain.Round) error {
	data, err := encodeHistory(rounds)
	if err != nil {
		return err
	}
	return c.put(ctx, KeyRoundHistory, data)
}

func (c *SQLiteCache) LoadHistory(ctx context.Context) ([]*rounddomain.Round, error) {
	data, err := c.get(ctx, KeyRoundHistory)
	if err != nil {
		return nil, err
	}
	return decodeHistory(data)
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
