package model

// Page represents a single emitted HTML file from the site build.
// Pages are read fresh on every audit run and discarded afterwards;
// nothing here is persisted.
//
// Design decision: We store both the raw bytes and the parsed extracts
// because:
//  1. Raw bytes are needed by checks that re-parse (html_lint)
//  2. Extracted anchors/text avoid re-parsing in the common checks
//  3. A personal blog's output tree is small, so memory is not a concern
type Page struct {
	// Path is the site-relative path of the file in slash form,
	// e.g. "2016/09/12/first-post.html".
	Path string `json:"path"`

	// URL is the page's canonical absolute URL under the configured
	// base URL. This is the synthetic self-reference used by the
	// orphan audit.
	URL string `json:"url"`

	// Title is the page title from the <title> tag, if any.
	Title string `json:"title,omitempty"`

	// Anchors contains the raw href attribute values of all anchor
	// elements, in document order and with duplicates preserved.
	// Multiplicity matters: the link graph counts occurrences.
	Anchors []string `json:"anchors,omitempty"`

	// Images contains the src attribute values of all img elements.
	Images []string `json:"images,omitempty"`

	// Text is the concatenated text content of the page, used by the
	// spelling check.
	Text string `json:"-"`

	// Raw contains the file's bytes as read from disk.
	Raw []byte `json:"-"`
}
