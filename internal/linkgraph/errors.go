package linkgraph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOrphanArticlesFound is the sentinel for the expected "audit failed"
// outcome. Use errors.Is against it; the concrete *OrphanArticlesFoundError
// carries the orphan list.
var ErrOrphanArticlesFound = errors.New("orphan articles found")

// OrphanArticlesFoundError reports every article URL referenced fewer
// times than the threshold. This is the audit's terminal failure, not a
// crash: the input tree needs more inbound links, not a retry.
type OrphanArticlesFoundError struct {
	// Orphans lists the under-referenced articles with their counts,
	// sorted by URL.
	Orphans []Reference
}

// Error lists every orphan with its reference count.
func (e *OrphanArticlesFoundError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d orphan article(s) found:", len(e.Orphans))
	for _, o := range e.Orphans {
		fmt.Fprintf(&sb, " %s (referenced %d time(s))", o.URL, o.Count)
	}
	return sb.String()
}

// Is makes errors.Is(err, ErrOrphanArticlesFound) work on the concrete type.
func (e *OrphanArticlesFoundError) Is(target error) bool {
	return target == ErrOrphanArticlesFound
}
