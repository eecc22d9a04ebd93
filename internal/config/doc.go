// Package config provides configuration structures and utilities for
// blogward. It defines the audit options, the .blogward file format, and
// the defaults used when nothing is configured.
package config
