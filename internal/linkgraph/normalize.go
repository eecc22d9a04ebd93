package linkgraph

import (
	"net/url"
	"regexp"
	"strings"
)

// Normalize resolves a raw href against the site base URL and returns its
// canonical absolute form. The second return value is false when the href
// is not an internal page link: empty, a bare fragment, a non-navigational
// scheme, or a URL outside the base host. External links are out of scope
// for the orphan audit; a separate liveness check owns them.
//
// Normalization rules:
//   - whitespace trimmed
//   - relative and root-relative paths resolved against the base URL
//   - the fragment is stripped (an anchor does not change the target page)
//   - scheme and host must match the base URL, case-insensitively
func Normalize(href string, base *url.URL) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" ||
		strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") {
		return "", false
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := base.ResolveReference(u)
	if !strings.EqualFold(resolved.Scheme, base.Scheme) || !strings.EqualFold(resolved.Host, base.Host) {
		return "", false
	}

	resolved.Fragment = ""
	if resolved.Path == "" {
		resolved.Path = "/"
	}
	return resolved.String(), true
}

// Matcher decides whether a URL path denotes a dated article.
type Matcher struct {
	pattern *regexp.Regexp
}

// NewMatcher compiles the article path pattern. The default pattern
// matches paths like /2016/09/12/first-post.html.
func NewMatcher(pattern string) (*Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Matcher{pattern: re}, nil
}

// IsArticle reports whether the URL's path matches the article pattern.
// Only the path is examined, never the query or fragment.
func (m *Matcher) IsArticle(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return m.pattern.MatchString(u.Path)
}
