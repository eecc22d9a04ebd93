// Package model defines the data structures shared across the audit:
// emitted pages, findings, severity levels, and the audit report that
// accumulates check results.
package model
