package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suitekit/internal/config"
	"suitekit/internal/domain"
)

func sampleOutput(runID string, at time.Time) *domain.TestResultsOutput {
	results := []domain.TestResult{
		{Invocation: domain.Invocation{Seq: 1, SuiteName: "demo", TestID: "succeeding_test", DisplayName: "succeeding test"}, Status: domain.StatusPassed},
		{
			Invocation: domain.Invocation{Seq: 2, SuiteName: "demo", TestID: "failing_test", DisplayName: "failing test"},
			Status:     domain.StatusFailed,
			Message:    "This is a failing test",
		},
		{Invocation: domain.Invocation{Seq: 3, SuiteName: "demo", TestID: "skipped_test", DisplayName: "skipped test"}, Status: domain.StatusSkipped},
		// Synthetic teardown result shares the last sequence number.
		{
			Invocation: domain.Invocation{Seq: 3, SuiteName: "demo", TestID: "after_all", DisplayName: "after all"},
			Status:     domain.StatusFailed,
			Message:    "teardown failed",
		},
	}
	return domain.Summarize(runID, results, 1500*time.Millisecond, 2, at)
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	cfg.OutputJSONDir = "storage"
	cfg.OutputJSONFile = "results.json"

	store := NewJSONStorage(cfg)
	output := sampleOutput("run-1", time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))
	output.Details[0].Resolved = true

	require.NoError(t, store.SaveOutput(output))
	assert.FileExists(t, filepath.Join(cfg.ProjectPath, "storage", "results.json"))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, output.Meta, loaded.Meta)
	assert.Len(t, loaded.Tests, 4)
	require.Len(t, loaded.Details, 2)
	assert.True(t, loaded.Details[0].Resolved)
	assert.Equal(t, "This is a failing test", loaded.Details[0].Message)
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	_, err := NewJSONStorage(cfg).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read results file")
}

func TestOpenHistory_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		driver  string
		dsn     string
		wantErr string
	}{
		{name: "unknown driver", driver: "postgres", dsn: "x", wantErr: "unsupported history driver"},
		{name: "sqlite without path", driver: "sqlite3", wantErr: "requires a database path"},
		{name: "mysql without dsn", driver: "mysql", wantErr: "requires a DSN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenHistory(ctx, tt.driver, tt.dsn)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSQLHistory_RecordAndRuns(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "history", "history.db")

	history, err := OpenHistory(ctx, "sqlite3", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { history.Close() })

	base := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		require.NoError(t, history.Record(ctx, sampleOutput(id, base.Add(time.Duration(i)*time.Hour))))
	}

	runs, err := history.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-c", runs[0].RunID)
	assert.Equal(t, "run-b", runs[1].RunID)
	assert.Equal(t, 4, runs[0].TotalTests)
	assert.Equal(t, 1, runs[0].PassedTests)
	assert.Equal(t, 2, runs[0].FailedTests)
	assert.Equal(t, 1, runs[0].SkippedTests)
	assert.Equal(t, 2, runs[0].Workers)
	assert.InDelta(t, 1.5, runs[0].DurationSeconds, 0.001)

	failed, err := history.FailedTests(ctx, "run-a")
	require.NoError(t, err)
	assert.Equal(t, []string{"demo::after_all", "demo::failing_test"}, failed)
}

func TestSQLHistory_RunsSameSecond(t *testing.T) {
	ctx := context.Background()
	history, err := OpenHistory(ctx, "sqlite3", filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { history.Close() })

	at := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	for _, id := range []string{"f3c1", "0a9e", "7b2d"} {
		require.NoError(t, history.Record(ctx, sampleOutput(id, at)))
	}

	runs, err := history.Runs(ctx, 10)
	require.NoError(t, err)
	var ids []string
	for _, r := range runs {
		ids = append(ids, r.RunID)
	}
	assert.Equal(t, []string{"7b2d", "0a9e", "f3c1"}, ids)
}

func TestSQLHistory_DuplicateRun(t *testing.T) {
	ctx := context.Background()
	history, err := OpenHistory(ctx, "sqlite3", filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { history.Close() })

	output := sampleOutput("run-dup", time.Now())
	require.NoError(t, history.Record(ctx, output))
	require.Error(t, history.Record(ctx, output))

	runs, err := history.Runs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
