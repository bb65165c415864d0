package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/cli/cachecmd"
	"github.com/thenoetrevino/taskdeck/internal/cli/project"
	"github.com/thenoetrevino/taskdeck/internal/cli/styles"
	"github.com/thenoetrevino/taskdeck/internal/cli/task"
	"github.com/thenoetrevino/taskdeck/internal/cli/worker"
	"github.com/thenoetrevino/taskdeck/internal/config"
	"github.com/thenoetrevino/taskdeck/internal/logging"
)

// NewRootCmd builds the taskdeck command tree
func NewRootCmd() *cobra.Command {
	var logFile io.Closer

	rootCmd := &cobra.Command{
		Use:   "taskdeck",
		Short: "Taskdeck - projects, tasks and workers from the terminal",
		Long: `Taskdeck manages projects, tasks and workers stored behind a REST API.
Collections are cached locally and served from the cache until refreshed.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(configPath)
			if err != nil {
				return &cli.CommandError{Code: cli.ExitDataErr, Err: err}
			}

			level, err := logging.ParseLevel(cfg.Log.Level)
			if err != nil {
				return &cli.CommandError{Code: cli.ExitDataErr, Err: err}
			}
			logFile, err = logging.Init(cfg.Log.Path, level)
			if err != nil {
				return &cli.CommandError{Code: cli.ExitError, Err: fmt.Errorf("failed to initialize logging: %w", err)}
			}

			styles.Init(cfg.ColorScheme)
			cmd.SetContext(cli.WithConfig(cmd.Context(), cfg))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logFile != nil {
				return logFile.Close()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/taskdeck/config.yaml)")

	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(worker.WorkerCmd())
	rootCmd.AddCommand(cachecmd.CacheCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(boardCmd())

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// Execute runs the command tree against os.Args
func Execute() error {
	return NewRootCmd().Execute()
}
