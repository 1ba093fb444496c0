package roundcache

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"
	"time"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	scoringdomain "github.com/Black-And-White-Club/golfcard/app/modules/scoring/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRound(id string) *rounddomain.Round {
	return &rounddomain.Round{
		ID:     id,
		Date:   time.Date(2026, 4, 11, 10, 0, 0, 0, time.UTC),
		Course: rounddomain.CourseRef{ID: "c1", Name: "La Moraleja", Par: 72},
		Holes:  []rounddomain.Hole{{Number: 1, Par: 4, HandicapRank: 7}, {Number: 2, Par: 3, HandicapRank: 15}},
		Players: []rounddomain.Player{{
			ID:              "p1",
			Name:            "Lucía",
			PlayingHandicap: 12,
			Team:            scoringdomain.TeamA,
			Scores:          map[int]rounddomain.Score{1: {Strokes: 5, Putts: 2}, 2: {Strokes: 3, Putts: 1}},
		}},
		Settings: rounddomain.Settings{
			UseHandicap:        true,
			HandicapPercentage: 75,
			CourseLength:       rounddomain.Length18,
			Game:               rounddomain.SindicatoGame{Distribution: []float64{4, 2, 1}},
		},
		CompletedHoles: []int{1},
		ExternalID:     "8d0f6b4e-9a51-4c1e-9d55-3e2f0f0b7a10",
	}
}

func runCacheContract(t *testing.T, c Cache) {
	ctx := context.Background()

	_, err := c.LoadActive(ctx)
	assert.True(t, errors.Is(err, ErrCacheMiss), "expected miss on empty cache, got %v", err)
	_, err = c.LoadHistory(ctx)
	assert.True(t, errors.Is(err, ErrCacheMiss), "expected miss on empty history, got %v", err)

	active := sampleRound("r-active")
	require.NoError(t, c.SaveActive(ctx, active))
	got, err := c.LoadActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, active, got)

	active.CompletedHoles = append(active.CompletedHoles, 2)
	require.NoError(t, c.SaveActive(ctx, active))
	got, err = c.LoadActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got.CompletedHoles, "second save should overwrite")

	require.NoError(t, c.ClearActive(ctx))
	_, err = c.LoadActive(ctx)
	assert.True(t, errors.Is(err, ErrCacheMiss))

	history := []*rounddomain.Round{sampleRound("r2"), sampleRound("r1")}
	require.NoError(t, c.SaveHistory(ctx, history))
	gotHistory, err := c.LoadHistory(ctx)
	require.NoError(t, err)
	require.Len(t, gotHistory, 2)
	assert.Equal(t, "r2", gotHistory[0].ID)
	assert.Equal(t, history[1], gotHistory[1])

	require.NoError(t, c.SaveHistory(ctx, nil))
	gotHistory, err = c.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, gotHistory)
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	runCacheContract(t, c)
}

func TestSQLiteCache(t *testing.T) {
	c, err := NewSQLiteCache(context.Background(), ":memory:")
	require.NoError(t, err)
	defer c.Close()
	runCacheContract(t, c)
}

func TestSQLiteCachePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/cache.db"

	c, err := NewSQLiteCache(ctx, path)
	require.NoError(t, err)
	require.NoError(t, c.SaveActive(ctx, sampleRound("r-file")))
	require.NoError(t, c.Close())

	reopened, err := NewSQLiteCache(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r-file", got.ID)
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	prefix := "golfcard-test-" + strconv.FormatInt(time.Now().UnixNano(), 36)

	c, err := NewRedisCache(ctx, addr, 0, prefix)
	require.NoError(t, err)
	defer func() {
		_ = c.client.Del(ctx, c.key(KeyActiveRound), c.key(KeyRoundHistory)).Err()
		_ = c.Close()
	}()
	runCacheContract(t, c)
}

func TestNewSelectsDriver(t *testing.T) {
	ctx := context.Background()

	c, err := New(ctx, Options{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	c, err = New(ctx, Options{Driver: DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteCache{}, c)
	require.NoError(t, c.Close())

	_, err = New(ctx, Options{Driver: "etcd"})
	assert.Error(t, err)
}
