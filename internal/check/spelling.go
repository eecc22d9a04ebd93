package check

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/gukoff/blogward/internal/model"
	"github.com/gukoff/blogward/internal/site"
)

// SpellingCheck pipes each page's text content through an external
// spellchecker running in list mode (reads text on stdin, prints one
// unknown word per line, e.g. `aspell list --mode=html`). Words in the
// allowlist file are accepted; everything else becomes a finding.
//
// Design decision: We wrap an external tool rather than embedding a
// dictionary because spellchecking quality lives in mature dictionaries
// (aspell, hunspell) that users already maintain personal word lists for.
type SpellingCheck struct {
	// command is the spellchecker invocation, argv form.
	command []string

	// allowlistPath points to a newline-delimited word allowlist.
	// Empty means no allowlist.
	allowlistPath string
}

// NewSpellingCheck creates the spelling check.
func NewSpellingCheck(command []string, allowlistPath string) *SpellingCheck {
	return &SpellingCheck{
		command:       command,
		allowlistPath: allowlistPath,
	}
}

// Name returns the check name.
func (c *SpellingCheck) Name() string {
	return "spelling"
}

// Run spellchecks every page. Text is NFC-normalized first so that
// composed and decomposed accents spell the same word.
func (c *SpellingCheck) Run(ctx context.Context, s *site.Site, report *model.AuditReport) error {
	if len(c.command) == 0 {
		return nil // not configured, nothing to do
	}

	allowed, err := c.loadAllowlist()
	if err != nil {
		return err
	}

	unknown := 0
	for _, page := range s.Pages {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		words, err := c.spellcheck(ctx, norm.NFC.String(page.Text))
		if err != nil {
			return fmt.Errorf("spellchecker failed on %s: %w", page.Path, err)
		}

		for _, word := range words {
			if allowed[strings.ToLower(word)] {
				continue
			}
			unknown++
			report.AddFinding(model.Finding{
				Check:    c.Name(),
				Title:    "Unknown word",
				Value:    word,
				Location: page.Path,
				Severity: model.SeverityLow,
			})
		}
	}

	if unknown > 0 {
		return fmt.Errorf("%d unknown word(s) found", unknown)
	}
	return nil
}

// spellcheck runs the external tool once with the given text on stdin and
// returns the reported unknown words, deduplicated per invocation.
func (c *SpellingCheck) spellcheck(ctx context.Context, text string) ([]string, error) {
	cmd := exec.CommandContext(ctx, c.command[0], c.command[1:]...) //nolint:gosec // Command comes from user configuration
	cmd.Stdin = strings.NewReader(text)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	words := make([]string, 0)
	scanner := bufio.NewScanner(&stdout)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || seen[word] {
			continue
		}
		seen[word] = true
		words = append(words, word)
	}
	return words, scanner.Err()
}

// loadAllowlist reads the allowlist file into a lowercase set.
// Blank lines and #-comments are skipped.
func (c *SpellingCheck) loadAllowlist() (map[string]bool, error) {
	allowed := make(map[string]bool)
	if c.allowlistPath == "" {
		return allowed, nil
	}

	f, err := os.Open(c.allowlistPath) //nolint:gosec // User-provided dictionary path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("spelling allowlist not found: %s", c.allowlistPath)
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		allowed[strings.ToLower(word)] = true
	}
	return allowed, scanner.Err()
}
