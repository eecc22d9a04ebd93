package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gukoff/blogward/internal/config"
)

// TestNewInitCmd tests the init command creation.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "init" {
			t.Errorf("expected use 'init', got %q", cmd.Use)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
		if flag.DefValue != ".blogward" {
			t.Errorf("expected default '.blogward', got %q", flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
	})
}

// TestRunInitCmd tests the init command execution.
func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates config file", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), ".blogward")

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", outputPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}

		for _, key := range []string{"site:", "build:", "checks:", "baseURL:", "threshold:"} {
			if !strings.Contains(string(content), key) {
				t.Errorf("expected config to contain %q", key)
			}
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), ".blogward")
		if err := os.WriteFile(outputPath, []byte("existing"), 0o600); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", outputPath})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for existing file")
		}
	})

	t.Run("force overwrites existing file", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), ".blogward")
		if err := os.WriteFile(outputPath, []byte("existing"), 0o600); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", outputPath, "--force"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if !strings.Contains(string(content), "site:") {
			t.Error("expected file to be overwritten with the starter config")
		}
	})

	t.Run("generated config loads through the config loader", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), ".blogward")

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", outputPath})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cf, err := config.LoadConfigFile(outputPath)
		if err != nil {
			t.Fatalf("starter config does not parse: %v", err)
		}
		if cf.Site.BaseURL != "https://example.com" {
			t.Errorf("unexpected baseURL: %s", cf.Site.BaseURL)
		}
		if cf.Checks.Orphans.Threshold != 2 {
			t.Errorf("unexpected threshold: %d", cf.Checks.Orphans.Threshold)
		}
	})
}
