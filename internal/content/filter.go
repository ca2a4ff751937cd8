package content

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/acormier/quill/internal/post"
)

// Criteria is a conjunction of optional selection predicates. Explicit
// paths short-circuit the rest: when set, the selection is exactly
// those paths.
type Criteria struct {
	// All selects every post. Required when no other predicate is
	// given, so an empty invocation cannot look like a deliberate
	// select-everything.
	All bool

	// TitlePattern is a case-insensitive substring match on the title.
	TitlePattern string

	// TextPattern is a case-insensitive substring match anywhere in
	// the frontmatter or body.
	TextPattern string

	// From and To are inclusive date bounds. Posts with no usable
	// date never match a bounded predicate.
	From *time.Time
	To   *time.Time

	// Paths selects exactly these files. Each must resolve to a
	// loaded post; a typo fails the whole selection.
	Paths []string
}

// Empty reports whether no predicate at all was given.
func (c Criteria) Empty() bool {
	return !c.All &&
		c.TitlePattern == "" &&
		c.TextPattern == "" &&
		c.From == nil &&
		c.To == nil &&
		len(c.Paths) == 0
}

// SelectionError reports an invalid selection: either no criteria were
// given, or an explicit path did not resolve. It aborts the run before
// any mutation.
type SelectionError struct {
	Reason string
}

func (e *SelectionError) Error() string { return e.Reason }

// Filter evaluates criteria against the collection and returns matching
// posts in discovery order. Zero matches is a valid empty result, not
// an error.
func (c *Collection) Filter(criteria Criteria) ([]*post.Post, error) {
	if criteria.Empty() {
		return nil, &SelectionError{Reason: "no selection criteria given; use --all to select every post"}
	}

	if len(criteria.Paths) > 0 {
		return c.filterByPaths(criteria.Paths)
	}

	if criteria.All {
		return c.Posts, nil
	}

	var selected []*post.Post
	for _, p := range c.Posts {
		if matches(p, criteria) {
			selected = append(selected, p)
		}
	}
	return selected, nil
}

// filterByPaths resolves each requested path against the loaded
// collection. Explicit paths are intentional, so a missing one is a
// hard error naming the path rather than a silent skip.
func (c *Collection) filterByPaths(paths []string) ([]*post.Post, error) {
	byPath := make(map[string]*post.Post, len(c.Posts))
	for _, p := range c.Posts {
		abs, err := filepath.Abs(p.Path)
		if err != nil {
			continue
		}
		byPath[abs] = p
	}

	var selected []*post.Post
	for _, raw := range paths {
		abs, err := filepath.Abs(raw)
		if err != nil {
			return nil, &SelectionError{Reason: fmt.Sprintf("cannot resolve path: %s", raw)}
		}
		p, ok := byPath[abs]
		if !ok {
			return nil, &SelectionError{Reason: fmt.Sprintf("path not found in collection: %s", raw)}
		}
		selected = append(selected, p)
	}
	return selected, nil
}

func matches(p *post.Post, criteria Criteria) bool {
	if criteria.TitlePattern != "" {
		if !containsFold(p.Title(), criteria.TitlePattern) {
			return false
		}
	}

	if criteria.From != nil || criteria.To != nil {
		date, ok := p.Date()
		if !ok {
			return false
		}
		if criteria.From != nil && date.Before(*criteria.From) {
			return false
		}
		if criteria.To != nil && date.After(*criteria.To) {
			return false
		}
	}

	if criteria.TextPattern != "" {
		if !containsFold(p.FullText(), criteria.TextPattern) {
			return false
		}
	}

	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
