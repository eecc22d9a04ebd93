// Package site loads a generated static site from disk: it enumerates the
// emitted HTML files and parses each into a model.Page with its anchors,
// images, title, and text content.
package site
