package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"suitekit/internal/config"
	"suitekit/internal/domain"
	"suitekit/internal/execution"
	"suitekit/internal/storage"
	"suitekit/internal/suite"
	"suitekit/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	selector  *Selector
	executor  *execution.WorkerPool
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
	logger    *slog.Logger
	progress  io.Writer
	now       func() time.Time
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	selector *Selector,
	executor *execution.WorkerPool,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
	logger *slog.Logger,
	progress io.Writer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		selector:  selector,
		executor:  executor,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
		logger:    logger,
		progress:  progress,
		now:       time.Now,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tests := rc.selector.tests()
	if len(tests) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	plan := suite.BuildPlan(tests)
	rc.executor.SetProgress(ui.NewProgressBar(plan.Len(), rc.progress))

	results, duration, err := rc.executor.Execute(ctx, plan)
	if err != nil {
		return err
	}

	output := domain.Summarize(uuid.NewString(), results, duration, rc.config.Processors, rc.now())
	if err := rc.storage.SaveOutput(output); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}
	rc.recordHistory(ctx, output)

	rc.formatter.PrintResults(results)
	rc.formatter.PrintMetaStats(output)

	if output.Meta.FailedTests == 0 {
		return nil
	}
	if rc.config.Flags.OpenFaills {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}
	return fmt.Errorf("%d of %d invocation(s) failed", output.Meta.FailedTests, output.Meta.TotalTests)
}

// recordHistory appends the run to the history database. Failures are
// logged and do not fail the run.
func (rc *RunCommand) recordHistory(ctx context.Context, output *domain.TestResultsOutput) {
	if rc.config.NoHistory {
		return
	}
	history, err := storage.OpenHistory(ctx, rc.config.HistoryDriver, rc.config.GetHistoryDSN())
	if err != nil {
		rc.logger.Warn("run history unavailable", "driver", rc.config.HistoryDriver, "error", err)
		return
	}
	defer history.Close()

	if err := history.Record(ctx, output); err != nil {
		rc.logger.Warn("failed to record run", "run_id", output.Meta.RunID, "error", err)
		return
	}
	rc.logger.Debug("run recorded", "run_id", output.Meta.RunID, "driver", rc.config.HistoryDriver)
}
