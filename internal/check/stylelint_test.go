package check

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestStyleLintCheck verifies the external style linter wrapper.
func TestStyleLintCheck(t *testing.T) {
	t.Parallel()

	t.Run("unconfigured check is a no-op", func(t *testing.T) {
		t.Parallel()
		rep := newTestReport()
		if err := NewStyleLintCheck(nil).Run(context.Background(), newTestSite(t), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("clean exit passes", func(t *testing.T) {
		t.Parallel()
		rep := newTestReport()
		c := NewStyleLintCheck([]string{"true"})
		if err := c.Run(context.Background(), newTestSite(t), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rep.TotalFindings() != 0 {
			t.Errorf("expected no findings, got %v", rep.Findings)
		}
	})

	t.Run("violations become findings", func(t *testing.T) {
		t.Parallel()
		rep := newTestReport()
		c := NewStyleLintCheck([]string{"sh", "-c", "echo 'main.scss:3 color literal'; echo 'main.scss:9 nesting too deep'; exit 1"})

		err := c.Run(context.Background(), newTestSite(t), rep)
		if err == nil {
			t.Fatal("expected error for lint violations")
		}
		findings := rep.FindingsByCheck("style_lint")
		if len(findings) != 2 {
			t.Fatalf("expected 2 findings, got %d", len(findings))
		}
		if findings[0].Value != "main.scss:3 color literal" {
			t.Errorf("unexpected finding: %v", findings[0])
		}
	})

	t.Run("missing binary reports could-not-run", func(t *testing.T) {
		t.Parallel()
		c := NewStyleLintCheck([]string{"definitely-not-a-linter"})
		err := c.Run(context.Background(), newTestSite(t), newTestReport())
		if err == nil {
			t.Fatal("expected error for missing binary")
		}
		if !strings.Contains(err.Error(), "could not run") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("working directory option applies", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "marker"), nil, 0o600); err != nil {
			t.Fatalf("failed to write marker: %v", err)
		}

		c := NewStyleLintCheck([]string{"sh", "-c", "test -f marker"}, WithStyleLintDir(dir))
		if err := c.Run(context.Background(), newTestSite(t), newTestReport()); err != nil {
			t.Errorf("expected linter to run in the configured directory, got %v", err)
		}
	})
}
