package report

import (
	"io"

	"github.com/gukoff/blogward/internal/model"
)

// Writer defines the interface for report output.
// Implementations render audit results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or buffers in
// tests with the same API.
type Writer interface {
	// Write renders the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.AuditReport) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
