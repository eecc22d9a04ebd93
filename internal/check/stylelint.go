package check

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gukoff/blogward/internal/model"
	"github.com/gukoff/blogward/internal/site"
)

// StyleLintCheck runs the configured external style linter (scss-lint,
// stylelint, whatever the site uses) and turns a non-zero exit status
// into findings, one per output line. The linter runs against the source
// tree, not the output dir; its arguments carry the paths.
type StyleLintCheck struct {
	// command is the linter invocation, argv form.
	command []string

	// dir is the working directory for the linter. Empty means the
	// process working directory.
	dir string
}

// StyleLintCheckOption configures a StyleLintCheck.
type StyleLintCheckOption func(*StyleLintCheck)

// WithStyleLintDir sets the linter's working directory.
func WithStyleLintDir(dir string) StyleLintCheckOption {
	return func(c *StyleLintCheck) {
		c.dir = dir
	}
}

// NewStyleLintCheck creates the style lint check.
func NewStyleLintCheck(command []string, opts ...StyleLintCheckOption) *StyleLintCheck {
	c := &StyleLintCheck{command: command}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the check name.
func (c *StyleLintCheck) Name() string {
	return "style_lint"
}

// Run executes the linter. A missing binary fails the check (the harness
// should not silently skip a configured tool); a clean exit passes.
func (c *StyleLintCheck) Run(ctx context.Context, _ *site.Site, report *model.AuditReport) error {
	if len(c.command) == 0 {
		return nil // not configured, nothing to do
	}

	cmd := exec.CommandContext(ctx, c.command[0], c.command[1:]...) //nolint:gosec // Command comes from user configuration
	cmd.Dir = c.dir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("style linter could not run: %w", err)
	}

	violations := 0
	scanner := bufio.NewScanner(&output)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		violations++
		report.AddFinding(model.Finding{
			Check:    c.Name(),
			Title:    "Style lint violation",
			Value:    line,
			Severity: model.SeverityMedium,
		})
	}

	return fmt.Errorf("style linter exited with status %d (%d violation line(s))", exitErr.ExitCode(), violations)
}
