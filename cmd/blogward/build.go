package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gukoff/blogward/internal/builder"
	"github.com/gukoff/blogward/internal/config"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the site generator without auditing",
		Long: `Run the configured static-site generator and stop. Useful for checking
that the build itself succeeds before a full audit.

Examples:
  blogward build
  blogward build -c ci/.blogward`,
		RunE: runBuild,
	}

	cmd.Flags().StringP("config", "c", "", "Path to the .blogward configuration file")

	return cmd
}

// runBuild executes the build command.
func runBuild(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()

	configPath, _ := cmd.Flags().GetString("config")
	if path := config.FindConfigFile(configPath); path != "" {
		cf, err := config.LoadConfigFile(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		cf.Apply(cfg)
	} else if configPath != "" {
		return fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	if len(cfg.BuildCommand) == 0 {
		return config.ErrNoBuildCommand
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	b := builder.New(cfg.BuildCommand,
		builder.WithTimeout(cfg.BuildTimeout),
		builder.WithLogger(logger),
	)
	return b.Build(ctx)
}
