package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjoyce/forkrun/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	db, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func TestRecordAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	started := time.Now().Add(-2 * time.Minute)
	id, err := store.Record(ctx, Run{
		Command:    "java -cp launcher.jar Main settings.properties",
		Outcome:    OutcomeFailed,
		Status:     3,
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
		Error:      "Error status [command: java ...]: 3",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	run, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, OutcomeFailed, run.Outcome)
	assert.Equal(t, 3, run.Status)
	assert.Equal(t, "Error status [command: java ...]: 3", run.Error)
	assert.WithinDuration(t, started, run.StartedAt, time.Second)
}

func TestRecordUsesProvidedID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Record(ctx, Run{
		ID:         "fixed-id",
		Command:    "java Main",
		Outcome:    OutcomeSuccess,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)
}

func TestRecordValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, Run{Outcome: OutcomeSuccess})
	assert.Error(t, err)

	_, err = store.Record(ctx, Run{Command: "java Main"})
	assert.Error(t, err)
}

func TestRecentNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, outcome := range []Outcome{OutcomeSuccess, OutcomeStopped, OutcomeFailed} {
		_, err := store.Record(ctx, Run{
			Command:    "java Main",
			Outcome:    outcome,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + 30*time.Second),
		})
		require.NoError(t, err)
	}

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, OutcomeFailed, runs[0].Outcome)
	assert.Equal(t, OutcomeStopped, runs[1].Outcome)
}

func TestGetMissingRun(t *testing.T) {
	store := newTestStore(t)

	run, err := store.Get(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, run)
}
