package wordpress

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var tagName = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)`)

// StrayHTML parses converted markdown and returns the names of HTML
// tags that survived conversion, outside code blocks. A non-empty
// result flags the post for manual review.
func StrayHTML(markdown string) []string {
	source := []byte(markdown)
	md := goldmark.New()
	reader := text.NewReader(source)
	doc := md.Parser().Parse(reader)

	seen := make(map[string]bool)

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.RawHTML:
			var b strings.Builder
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				b.Write(seg.Value(source))
			}
			collectTags(seen, b.String())

		case *ast.HTMLBlock:
			var b strings.Builder
			for i := 0; i < node.Lines().Len(); i++ {
				seg := node.Lines().At(i)
				b.Write(seg.Value(source))
			}
			collectTags(seen, b.String())
		}
		return ast.WalkContinue, nil
	})

	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func collectTags(seen map[string]bool, fragment string) {
	for _, m := range tagName.FindAllStringSubmatch(fragment, -1) {
		name := strings.ToLower(m[1])
		// Single-letter matches are usually code or prose, not markup.
		if len(name) > 1 {
			seen[name] = true
		}
	}
}
