package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"suitekit/internal/config"
	"suitekit/internal/storage"
	"suitekit/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, formatter *ui.Formatter) *HistoryCommand {
	return &HistoryCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	history, err := storage.OpenHistory(ctx, hc.config.HistoryDriver, hc.config.GetHistoryDSN())
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer history.Close()

	runs, err := history.Runs(ctx, hc.config.Flags.Limit)
	if err != nil {
		return err
	}
	hc.formatter.PrintHistory(runs)
	return nil
}
