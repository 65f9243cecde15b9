package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"suitekit/internal/config"
	"suitekit/internal/storage"
	"suitekit/internal/suite"
	"suitekit/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	selector  *Selector
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	selector *Selector,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		selector:  selector,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	tests := lc.selector.tests()
	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	lc.formatter.PrintPlan(suite.BuildPlan(tests), lc.config.Flags.Invocations, lc.failedInLastRun())
	return nil
}

// failedInLastRun returns "suite::test" keys of the last run's failures.
// A missing or unreadable report yields no marks.
func (lc *ListCommand) failedInLastRun() map[string]struct{} {
	output, err := lc.storage.Load()
	if err != nil {
		return nil
	}
	failed := make(map[string]struct{}, len(output.Details))
	for _, f := range output.Details {
		failed[f.Suite+"::"+f.TestName] = struct{}{}
	}
	return failed
}
