// Package main provides the entry point for the blogward CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for blogward.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blogward",
		Short: "Build-and-validation harness for a static blog",
		Long: `Blogward compiles a static blog with its site generator and audits the
generated output: required pages present, forbidden pages absent,
orphaned articles, spelling, dead external links, HTML structure, style
lint, and image metadata leaks.

The audit exits non-zero if any check fails.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
