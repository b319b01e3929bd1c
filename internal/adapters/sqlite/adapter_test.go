package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medley-labs/medley/internal/core/domain"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	adapter, err := NewAdapter(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = adapter.Close() })
	return adapter
}

func TestAdapter_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []domain.BuildRecord{
		{ID: "b1", Source: "recs", Name: "Medley Mix", URL: "https://open.spotify.com/playlist/p1", ImageURL: "https://img/1.jpg", TrackCount: 10, Skipped: 0, CreatedAt: base},
		{ID: "b2", Source: "favorite", Name: "Medley Mix", URL: "https://open.spotify.com/playlist/p2", TrackCount: 150, Skipped: 0, CreatedAt: base.Add(time.Minute)},
		{ID: "b3", Source: "recs", Name: "Medley Mix", URL: "https://open.spotify.com/playlist/p3", ImageURL: "https://img/3.jpg", TrackCount: 8, Skipped: 2, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, rec := range records {
		require.NoError(t, adapter.Record(ctx, rec))
	}

	t.Run("newest first", func(t *testing.T) {
		got, err := adapter.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "b3", got[0].ID)
		assert.Equal(t, "b2", got[1].ID)
		assert.Equal(t, "b1", got[2].ID)

		assert.Equal(t, "recs", got[0].Source)
		assert.Equal(t, 8, got[0].TrackCount)
		assert.Equal(t, 2, got[0].Skipped)
		assert.True(t, got[0].CreatedAt.Equal(base.Add(2*time.Minute)))
	})

	t.Run("limit applies", func(t *testing.T) {
		got, err := adapter.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "b3", got[0].ID)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		err := adapter.Record(ctx, records[0])
		assert.Error(t, err)
	})
}

func TestAdapter_RecentEmpty(t *testing.T) {
	adapter := newTestAdapter(t)

	got, err := adapter.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
