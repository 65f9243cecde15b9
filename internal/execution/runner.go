package execution

import (
	"context"
	"log/slog"

	"suitekit/internal/domain"
	"suitekit/internal/suite"
)

// Runner executes a single invocation
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a new Runner
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run executes one invocation on the given worker
func (r *Runner) Run(ctx context.Context, inv *suite.Invocation, workerID int) domain.TestResult {
	rec := inv.Record
	r.logger.Debug("invocation started",
		"seq", rec.Seq,
		"suite", rec.SuiteName,
		"test", rec.TestID,
		"display_name", rec.DisplayName,
		"worker", workerID,
	)

	result := inv.Run(ctx)
	result.WorkerID = workerID

	for _, entry := range result.Entries {
		r.logger.Debug("report entry",
			"seq", rec.Seq,
			"test", entry.TestID,
			"display_name", entry.DisplayName,
			"message", entry.Message,
		)
	}

	level := slog.LevelDebug
	if result.Status == domain.StatusFailed {
		level = slog.LevelWarn
	}
	r.logger.Log(ctx, level, "invocation finished",
		"seq", rec.Seq,
		"test", rec.TestID,
		"status", result.Status,
		"duration", result.Duration,
		"message", result.Message,
	)
	return result
}
