// Package builder runs the external static-site generator that produces
// the output tree the checks audit. The generator is an external
// collaborator: blogward never generates HTML itself.
package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

// ErrNoCommand is returned when Build is called without a configured
// generator command.
var ErrNoCommand = errors.New("no build command configured")

// Builder invokes the site generator with a bounded runtime.
type Builder struct {
	// command is the generator invocation, argv form,
	// e.g. ["bundle", "exec", "jekyll", "build"].
	command []string

	// dir is the working directory for the generator. Empty means the
	// process working directory.
	dir string

	// env is extra environment for the generator, appended to the
	// inherited environment.
	env []string

	// timeout bounds the generator run.
	timeout time.Duration

	// logger for build progress.
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithDir sets the generator's working directory.
func WithDir(dir string) Option {
	return func(b *Builder) {
		b.dir = dir
	}
}

// WithEnv appends environment variables ("KEY=value") for the generator.
func WithEnv(env []string) Option {
	return func(b *Builder) {
		b.env = env
	}
}

// WithTimeout bounds the generator run.
func WithTimeout(timeout time.Duration) Option {
	return func(b *Builder) {
		b.timeout = timeout
	}
}

// WithLogger sets a custom logger for the builder.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// New creates a Builder for the given generator command.
func New(command []string, opts ...Option) *Builder {
	b := &Builder{
		command: command,
		timeout: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Build runs the generator and waits for it to finish. Generator output
// goes straight to the audit's stdout/stderr so build errors read the
// same as they would from a manual run.
func (b *Builder) Build(ctx context.Context) error {
	if len(b.command) == 0 {
		return ErrNoCommand
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	b.logger.Info("building site", "command", b.command)
	start := time.Now()

	cmd := exec.CommandContext(ctx, b.command[0], b.command[1:]...) //nolint:gosec // Command comes from user configuration
	cmd.Dir = b.dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(b.env) > 0 {
		cmd.Env = append(os.Environ(), b.env...)
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("site build timed out after %s: %w", b.timeout, ctx.Err())
		}
		return fmt.Errorf("site build failed: %w", err)
	}

	b.logger.Info("site built", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
