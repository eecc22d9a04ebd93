// Package linkgraph implements the orphaned-article audit: it normalizes
// every internal hyperlink in the generated site, tallies how often each
// dated article URL is referenced, and flags articles referenced fewer
// times than the configured threshold.
package linkgraph
