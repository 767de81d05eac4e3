package shared

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"modernc.org/sqlite"
)

var fastPolicy = RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}

func TestConflictClassification(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("no such table: activity"), false},
		{errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{errors.New("exec: database is locked"), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSQLiteConflictError(tt.err), "%v", tt.err)
	}
}

func TestConflictClassificationDriverError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "busy.db")

	holder, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer holder.Close()
	_, err = holder.Exec("CREATE TABLE t (v INTEGER)")
	require.NoError(t, err)

	tx, err := holder.Begin()
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()
	_, err = tx.Exec("INSERT INTO t VALUES (1)")
	require.NoError(t, err)

	other, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer other.Close()

	_, err = other.Exec("INSERT INTO t VALUES (2)")
	require.Error(t, err)
	var se *sqlite.Error
	require.ErrorAs(t, err, &se)
	assert.True(t, IsSQLiteConflictError(err), "%v", err)
	assert.True(t, IsSQLiteConflictError(fmt.Errorf("record: %w", err)))

	_, err = other.Exec("INSERT INTO missing VALUES (1)")
	require.Error(t, err)
	assert.False(t, IsSQLiteConflictError(err), "%v", err)
}

func TestRetryOnConflictEventuallySucceeds(t *testing.T) {
	calls := 0
	err := RetryOnConflict(context.Background(), fastPolicy, "insert", func() error {
		calls++
		if calls < 3 {
			return errors.New("SQLITE_BUSY")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOnConflictGivesUp(t *testing.T) {
	calls := 0
	busy := errors.New("SQLITE_BUSY")
	err := RetryOnConflict(context.Background(), fastPolicy, "insert", func() error {
		calls++
		return busy
	})
	assert.ErrorIs(t, err, busy)
	assert.Equal(t, 3, calls)
}

func TestRetryOnConflictStopsOnOtherErrors(t *testing.T) {
	calls := 0
	bad := errors.New("constraint failed")
	err := RetryOnConflict(context.Background(), fastPolicy, "insert", func() error {
		calls++
		return bad
	})
	assert.ErrorIs(t, err, bad)
	assert.Equal(t, 1, calls)
}

func TestRetryOnConflictHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryOnConflict(ctx, RetryPolicy{MaxAttempts: 5, BaseDelay: time.Hour}, "insert", func() error {
		return errors.New("database is locked")
	})
	assert.ErrorIs(t, err, context.Canceled)
}
