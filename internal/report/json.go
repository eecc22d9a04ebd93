package report

import (
	"encoding/json"
	"io"

	"github.com/gukoff/blogward/internal/model"
)

// JSONWriter outputs reports as indented JSON for machine consumption.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in JSON format.
func (w *JSONWriter) Write(report *model.AuditReport) (int, error) {
	if report.Error != nil && report.ErrorMessage == "" {
		report.ErrorMessage = report.Error.Error()
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')

	return w.output.Write(data)
}
