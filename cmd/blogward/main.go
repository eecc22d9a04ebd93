// Package main provides the entry point for the blogward CLI.
//
// Blogward is a build-and-validation harness for a static blog: it runs
// the site generator and then audits the generated HTML tree (required
// pages, forbidden pages, orphaned articles, spelling, dead links, HTML
// structure, style lint, image metadata).
//
// Usage:
//
//	blogward audit
//	blogward build
//
// See --help for all available options.
package main

// main is the entry point for blogward.
func main() {
	Execute()
}
