package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"suitekit/internal/cli"
	"suitekit/internal/cli/commands"
	"suitekit/internal/config"
	"suitekit/internal/demo"
	"suitekit/internal/suite"
)

var version = "dev"

func main() {
	// Create initial config with defaults, replaced once flags are parsed
	cfg := config.New()

	var level slog.LevelVar
	level.Set(cfg.GetLogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level}))

	registry := suite.NewRegistry()
	if err := demo.Register(registry); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var flags cli.Flags
	rootCmd := &cobra.Command{
		Use:           "suitekit",
		Short:         "Parameterized test suite runner",
		Long:          `Run explicitly registered test suites in parallel. Parameterized tests draw their arguments from fixed lists, factories, tabular text, null and empty sentinels or enum expansion.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(flags.ConfigFile, flags.ToConfigFlags())
			if err != nil {
				return err
			}
			*cfg = *loaded
			level.Set(cfg.GetLogLevel())
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "Path to the config file (default ./"+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Show report entries and debug logs")

	cmds := commands.NewCommands(cfg, registry, logger, os.Stdout, os.Stderr)
	cmds.Register(rootCmd, &flags)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
