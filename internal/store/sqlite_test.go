package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "nested", "activity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndListActivity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)

	for i, op := range []domain.Operation{domain.OpTranslate, domain.OpSpeech, domain.OpContext} {
		e := &domain.ActivityEntry{
			Operation:  op,
			Role:       "user",
			InputChars: 10 * (i + 1),
			Status:     domain.StatusOK,
			DurationMs: int64(i),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.RecordActivity(ctx, e))
		assert.NotZero(t, e.ID)
	}

	got, err := s.ListActivity(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.OpContext, got[0].Operation)
	assert.Equal(t, domain.OpSpeech, got[1].Operation)
	assert.Equal(t, 30, got[0].InputChars)
	assert.True(t, got[0].CreatedAt.Equal(base.Add(2*time.Minute)))
}

func TestRecordActivityDefaultsTimestamp(t *testing.T) {
	s := newTestStore(t)
	e := &domain.ActivityEntry{Operation: domain.OpSpeech, Role: "admin", Status: domain.StatusUpstreamError, Detail: "no media returned"}

	require.NoError(t, s.RecordActivity(context.Background(), e))
	assert.False(t, e.CreatedAt.IsZero())

	got, err := s.ListActivity(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "no media returned", got[0].Detail)
	assert.True(t, got[0].Failed())
}

func TestPruneActivity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now()

	old := &domain.ActivityEntry{Operation: domain.OpTranslate, Role: "user", Status: domain.StatusOK, CreatedAt: now.Add(-8 * 24 * time.Hour)}
	fresh := &domain.ActivityEntry{Operation: domain.OpTranslate, Role: "user", Status: domain.StatusOK, CreatedAt: now}
	require.NoError(t, s.RecordActivity(ctx, old))
	require.NoError(t, s.RecordActivity(ctx, fresh))

	removed, err := s.PruneActivity(ctx, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	got, err := s.ListActivity(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, fresh.ID, got[0].ID)
}

func TestConcurrentRecord(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.RecordActivity(ctx, &domain.ActivityEntry{
				Operation: domain.OpDetectLanguage, Role: "user", Status: domain.StatusOK,
			}))
		}()
	}
	wg.Wait()

	got, err := s.ListActivity(ctx, MaxListLimit+1)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
