package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-autoplay/testing/suite"
)

func newSummary(id string, finishedAt time.Time) *entity.SeriesSummary {
	return &entity.SeriesSummary{
		ID:          id,
		StrategyA:   "random",
		StrategyB:   "tactics",
		MarkA:       entity.PlayerX,
		MarkB:       entity.PlayerO,
		Starter:     entity.StarterFixed,
		MaxTurns:    1000,
		TurnsPlayed: 1000,
		GamesPlayed: 120,
		PointsA:     30.5,
		PointsB:     89.5,
		WinsA:       20,
		WinsB:       79,
		Ties:        21,
		StartedAt:   finishedAt.Add(-time.Second).UTC(),
		FinishedAt:  finishedAt.UTC(),
	}
}

func TestSeriesRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	seriesRepo := NewSeriesRepository(st.Storage)

	// Given: a finished series
	summary := newSummary("123", time.Now())

	// When: CreateOrUpdate is called
	err := seriesRepo.CreateOrUpdate(ctx, summary)

	// Then: no error should be returned, and the series is stored
	require.NoError(t, err)
}

func TestSeriesRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		seriesRepo := NewSeriesRepository(st.Storage)

		// Given: a stored series
		summary := newSummary("123", time.Now())
		require.NoError(t, seriesRepo.CreateOrUpdate(ctx, summary))

		// When: GetByID is called with existing ID
		retrieved, err := seriesRepo.GetByID(ctx, summary.ID)

		// Then: the retrieved series should match the saved one
		require.NoError(t, err)
		assert.Equal(t, summary.ID, retrieved.ID)
		assert.Equal(t, summary.GamesPlayed, retrieved.GamesPlayed)
		assert.InDelta(t, summary.PointsB, retrieved.PointsB, 0)
		assert.True(t, summary.FinishedAt.Equal(retrieved.FinishedAt))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		seriesRepo := NewSeriesRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		retrieved, err := seriesRepo.GetByID(ctx, "9999999")

		// Then: an ErrSeriesNotFound error should be returned
		require.ErrorIs(t, err, ErrSeriesNotFound)
		assert.Empty(t, retrieved.ID)
	})
}

func TestSeriesRepository_ListIDs(t *testing.T) {
	ctx, st := suite.New(t)

	seriesRepo := NewSeriesRepository(st.Storage)

	// Given: three series finished one minute apart
	now := time.Now()
	require.NoError(t, seriesRepo.CreateOrUpdate(ctx, newSummary("old", now.Add(-2*time.Minute))))
	require.NoError(t, seriesRepo.CreateOrUpdate(ctx, newSummary("new", now)))
	require.NoError(t, seriesRepo.CreateOrUpdate(ctx, newSummary("mid", now.Add(-time.Minute))))

	// When: listing
	ids, err := seriesRepo.ListIDs(ctx)

	// Then: the most recent comes first
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, ids)
}

func TestSeriesRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		seriesRepo := NewSeriesRepository(st.Storage)

		// Given: a stored series
		summary := newSummary("123", time.Now())
		require.NoError(t, seriesRepo.CreateOrUpdate(ctx, summary))

		// When: DeleteByID is called with existing ID
		err := seriesRepo.DeleteByID(ctx, summary.ID)

		// Then: it is gone from both the store and the index
		require.NoError(t, err)

		_, err = seriesRepo.GetByID(ctx, summary.ID)
		require.ErrorIs(t, err, ErrSeriesNotFound)

		ids, err := seriesRepo.ListIDs(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		seriesRepo := NewSeriesRepository(st.Storage)

		// When: DeleteByID is called with non-existent ID
		err := seriesRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrSeriesNotFound error should be returned
		require.ErrorIs(t, err, ErrSeriesNotFound)
	})
}
