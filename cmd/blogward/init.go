package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gukoff/blogward/internal/config"
)

// starterConfig is written by `blogward init`. Every option is present
// and commented so the file doubles as documentation.
const starterConfig = `# Blogward configuration.
# Flags override this file; this file overrides built-in defaults.

site:
  # Directory the generator emits HTML into.
  outputDir: _site

  # Canonical root URL the site is served from. Required.
  baseURL: https://example.com

  # Regular expression (applied to URL paths) that identifies dated
  # article pages.
  # articlePattern: '^/\d{4}/\d{2}/\d{2}/'

build:
  # Site generator invocation, argv form.
  command: [bundle, exec, jekyll, build]
  # timeout: 5m

checks:
  # Patterns that must each match at least one emitted page.
  requiredPages:
    - index.html
    - atom.xml

  # Patterns no emitted page may match.
  forbiddenPages:
    - drafts/**

  orphans:
    # Minimum reference count per dated article. Every page credits
    # itself one reference, so 2 demands one real inbound link.
    threshold: 2

  links:
    # timeout: 10s
    # concurrency: 8
    # cacheTTL: 24h
    ignoreHosts:
      - localhost

  spelling:
    # Spellchecker in list mode: reads text on stdin, prints one
    # unknown word per line.
    # command: [aspell, list, --lang=en]
    # dictionary: .spelling-allowlist

  stylelint:
    # command: [scss-lint, _sass/]

  images:
    # pattern: '**/*.{jpg,jpeg,png,tiff,tif}'
`

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .blogward configuration file",
		Long: `Write a commented .blogward configuration file.
Fails if the file already exists unless --force is given.`,
		RunE: runInit,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile, "Path to write the configuration file to")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration file")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(output); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", output)
	}

	if err := os.WriteFile(output, []byte(starterConfig), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
	return nil
}
