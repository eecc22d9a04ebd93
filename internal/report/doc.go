// Package report renders audit results for humans: a plain text writer
// for terminals and CI logs, and a Markdown writer for sharing.
package report
