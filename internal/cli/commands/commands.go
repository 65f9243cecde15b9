package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"suitekit/internal/cli"
	"suitekit/internal/config"
	"suitekit/internal/discovery"
	"suitekit/internal/execution"
	"suitekit/internal/storage"
	"suitekit/internal/suite"
	"suitekit/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Faills  *FaillsCommand
	History *HistoryCommand
}

// NewCommands creates all commands with dependencies. Results go to out,
// progress to errOut.
func NewCommands(cfg *config.Config, registry *suite.Registry, logger *slog.Logger, out, errOut io.Writer) *Commands {
	filter := discovery.NewFilter()
	runner := execution.NewRunner(logger)
	scheduler := execution.NewRoundRobinScheduler()
	executor := execution.NewWorkerPool(cfg, runner, scheduler, logger)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, out)
	errorViewer := ui.NewErrorViewer(jsonStorage)
	selector := NewSelector(cfg, registry, filter)

	return &Commands{
		Run:     NewRunCommand(cfg, selector, executor, jsonStorage, formatter, errorViewer, logger, errOut),
		List:    NewListCommand(cfg, selector, formatter, jsonStorage),
		Faills:  NewFaillsCommand(jsonStorage, errorViewer),
		History: NewHistoryCommand(cfg, formatter),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	selection := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., 'parameterized*' or 'demo::*source*')")
		cmd.Flags().StringSliceVarP(&flags.Tags, "tag", "t", nil, "Only tests carrying one of these tags")
		cmd.Flags().StringSliceVar(&flags.ExcludeTags, "exclude-tag", nil, "Skip tests carrying one of these tags")
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run registered tests in parallel",
		Long:  "Expand registered tests into invocations and execute them using parallel workers",
		RunE:  c.Run.Execute,
	}
	selection(runCmd)
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of workers to use (default from config)")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	runCmd.Flags().BoolVar(&flags.NoHistory, "no-history", false, "Do not record this run in the history database")
	rootCmd.AddCommand(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered tests",
		Long:  "List registered tests without executing them",
		RunE:  c.List.Execute,
	}
	selection(listCmd)
	listCmd.Flags().BoolVarP(&flags.Invocations, "invocations", "i", false, "List the invocations each test expands to")
	rootCmd.AddCommand(listCmd)

	faillsCmd := &cobra.Command{
		Use:   "faills",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last test run in an interactive viewer",
		RunE:  c.Faills.Execute,
	}
	rootCmd.AddCommand(faillsCmd)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Long:  "List the most recent runs recorded in the history database",
		RunE:  c.History.Execute,
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", config.DefaultHistoryLimit, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

// Selector picks the registered tests matching the configured filters
type Selector struct {
	config   *config.Config
	registry *suite.Registry
	filter   *discovery.Filter
}

// NewSelector creates a Selector over registry
func NewSelector(cfg *config.Config, registry *suite.Registry, filter *discovery.Filter) *Selector {
	return &Selector{config: cfg, registry: registry, filter: filter}
}

func (s *Selector) tests() []*suite.Test {
	flags := s.config.Flags
	tests := s.registry.Tests()
	tests = s.filter.FilterByName(tests, flags.NameFilter)
	return s.filter.FilterByTags(tests, flags.Tags, flags.ExcludeTags)
}
