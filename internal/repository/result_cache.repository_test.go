package repository

import (
	"context"
	"recallvantage/internal/domain"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_memoryResultCacheHandler(t *testing.T) {
	ctx := context.Background()
	result := domain.SimulationResult{
		RunID:           uuid.MustParse("8c5b6a35-3f58-5c9c-9b59-7cb0a3df7e0a"),
		Complete:        true,
		TrialsCompleted: 10,
		TrialsRequested: 10,
		WinRate:         0.9,
		CategoryFrequencies: []domain.CategoryFrequency{
			{Name: "Recall", Count: 9, Frequency: 0.9},
			{Name: "No Event", Count: 1, Frequency: 0.1},
		},
		Recommendation: domain.Recommendation{
			Rating:    "BUY",
			Rationale: []string{"a"},
		},
	}

	t.Run("round trip", func(t *testing.T) {
		cache := NewMemoryResultCacheRepository(time.Hour)
		miss, err := cache.Get(ctx, "abc")
		require.NoError(t, err)
		require.Nil(t, miss)

		require.NoError(t, cache.Set(ctx, "abc", result))
		hit, err := cache.Get(ctx, "abc")
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(result, *hit))

		require.NoError(t, cache.Delete(ctx, "abc"))
		miss, err = cache.Get(ctx, "abc")
		require.NoError(t, err)
		require.Nil(t, miss)
	})

	t.Run("expires", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		handler := NewMemoryResultCacheRepository(time.Minute).(memoryResultCacheHandler)
		handler.now = func() time.Time { return now }

		require.NoError(t, handler.Set(ctx, "abc", result))
		now = now.Add(2 * time.Minute)
		miss, err := handler.Get(ctx, "abc")
		require.NoError(t, err)
		require.Nil(t, miss)
	})
}
