package roundrepository_integration_tests

import (
	"testing"
	"time"

	rounddb "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/golfcard/integration_tests/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseDate = time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)

func TestCreateAndGetRound(t *testing.T) {
	env := getTestEnv(t)
	repo := rounddb.NewRepository(env.DB)
	gen := testutils.NewTestDataGenerator(42)

	round, err := gen.GenerateRound(3, 9, baseDate)
	require.NoError(t, err)

	externalID, err := repo.CreateRound(env.Ctx, nil, round)
	require.NoError(t, err)
	_, err = uuid.Parse(externalID)
	require.NoError(t, err)

	got, err := repo.GetRound(env.Ctx, nil, externalID)
	require.NoError(t, err)
	assert.Equal(t, externalID, got.ExternalID)
	assert.Equal(t, round.ID, got.ID)
	assert.True(t, round.Date.Equal(got.Date))
	assert.Equal(t, round.CompletedHoles, got.CompletedHoles)
	require.Len(t, got.Players, 3)
	for i, p := range round.Players {
		assert.Equal(t, p.PlayingHandicap, got.Players[i].PlayingHandicap)
		assert.Equal(t, p.Scores, got.Players[i].Scores)
	}
	assert.Equal(t, round.Settings.Mode(), got.Settings.Mode())
}

func TestUpsertRound(t *testing.T) {
	env := getTestEnv(t)
	repo := rounddb.NewRepository(env.DB)
	gen := testutils.NewTestDataGenerator(7)

	round, err := gen.GenerateRound(2, 18, baseDate)
	require.NoError(t, err)

	t.Run("creates a missing document", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, repo.UpsertRound(env.Ctx, nil, id, round))

		got, err := repo.GetRound(env.Ctx, nil, id)
		require.NoError(t, err)
		assert.False(t, got.IsFinished)
	})

	t.Run("replaces an existing document", func(t *testing.T) {
		id, err := repo.CreateRound(env.Ctx, nil, round)
		require.NoError(t, err)

		finished := round.Clone()
		finished.Finish()
		require.NoError(t, repo.UpsertRound(env.Ctx, nil, id, finished))

		got, err := repo.GetRound(env.Ctx, nil, id)
		require.NoError(t, err)
		assert.True(t, got.IsFinished)
	})

	t.Run("rejects a non-uuid id", func(t *testing.T) {
		err := repo.UpsertRound(env.Ctx, nil, "ext-1", round)
		assert.ErrorIs(t, err, rounddb.ErrInvalidID)
	})
}

func TestListRounds(t *testing.T) {
	env := getTestEnv(t)
	repo := rounddb.NewRepository(env.DB)
	gen := testutils.NewTestDataGenerator(99)

	for days := 0; days < 4; days++ {
		round, err := gen.GenerateRound(2, 3, baseDate.AddDate(0, 0, -days*7))
		require.NoError(t, err)
		_, err = repo.CreateRound(env.Ctx, nil, round)
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		opts      rounddb.ListOptions
		wantCount int
	}{
		{name: "all", opts: rounddb.ListOptions{}, wantCount: 4},
		{name: "limit", opts: rounddb.ListOptions{Limit: 2}, wantCount: 2},
		{name: "since", opts: rounddb.ListOptions{Since: baseDate.AddDate(0, 0, -8)}, wantCount: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rounds, err := repo.ListRounds(env.Ctx, nil, tt.opts)
			require.NoError(t, err)
			require.Len(t, rounds, tt.wantCount)
			assert.True(t, rounds[0].Date.Equal(baseDate), "newest round first")
			for i := 1; i < len(rounds); i++ {
				assert.True(t, rounds[i-1].Date.After(rounds[i].Date))
			}
		})
	}
}

func TestDeleteRound(t *testing.T) {
	env := getTestEnv(t)
	repo := rounddb.NewRepository(env.DB)

	round, err := testutils.NewTestDataGenerator(3).GenerateRound(2, 1, baseDate)
	require.NoError(t, err)
	id, err := repo.CreateRound(env.Ctx, nil, round)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteRound(env.Ctx, nil, id))

	_, err = repo.GetRound(env.Ctx, nil, id)
	assert.ErrorIs(t, err, rounddb.ErrNotFound)

	err = repo.DeleteRound(env.Ctx, nil, id)
	assert.ErrorIs(t, err, rounddb.ErrNoRowsAffected)
}

func TestRunInTransaction(t *testing.T) {
	env := getTestEnv(t)
	repo := rounddb.NewRepository(env.DB)

	round, err := testutils.NewTestDataGenerator(5).GenerateRound(2, 2, baseDate)
	require.NoError(t, err)

	tx, err := env.DB.BeginTx(env.Ctx, nil)
	require.NoError(t, err)
	id, err := repo.CreateRound(env.Ctx, tx, round)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	_, err = repo.GetRound(env.Ctx, nil, id)
	assert.ErrorIs(t, err, rounddb.ErrNotFound)
}
