package site

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseResult contains the information extracted from one HTML page.
//
// Design decision: We return a result struct from a single parsing pass
// rather than one method per element kind because:
//  1. A single pass over the tree is more efficient
//  2. Related data is collected together
//  3. Callers pick what they need
type ParseResult struct {
	// Title is the page title from the <title> tag.
	Title string

	// Anchors contains every anchor's raw href attribute value, in
	// document order. Duplicates are preserved: the link graph counts
	// occurrences, not distinct values.
	Anchors []string

	// Images contains every img element's src attribute value.
	Images []string

	// Text is the concatenated text content of the page, excluding
	// script and style bodies.
	Text string
}

// Parse parses HTML content and extracts anchors, images, the title, and
// text content.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. It recovers from the malformed HTML that generators sometimes emit,
//     which matches the lenient-parsing requirement of the audit
//  2. It provides a proper DOM-like structure
//  3. More maintainable than complex regex patterns
func Parse(content io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Anchors: make([]string, 0),
		Images:  make([]string, 0),
	}

	var text strings.Builder

	var walk func(n *html.Node, inTitle, skipText bool)
	walk = func(n *html.Node, inTitle, skipText bool) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "title":
				inTitle = true
			case "script", "style":
				skipText = true
			case "a":
				if href, ok := attr(n, "href"); ok {
					result.Anchors = append(result.Anchors, href)
				}
			case "img":
				if src, ok := attr(n, "src"); ok && src != "" {
					result.Images = append(result.Images, src)
				}
			}
		case html.TextNode:
			if inTitle && result.Title == "" {
				result.Title = strings.TrimSpace(n.Data)
			}
			if !skipText {
				text.WriteString(n.Data)
				text.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inTitle, skipText)
		}
	}
	walk(doc, false, false)

	result.Text = text.String()
	return result, nil
}

// attr retrieves an attribute value from an HTML node.
// The second return value distinguishes a missing attribute from an
// empty one; the html_lint check cares about empty hrefs.
func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
