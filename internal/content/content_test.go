package content

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/acormier/quill/internal/post"
	"github.com/acormier/quill/internal/testutil"
)

func datedSite(t *testing.T) *testutil.Site {
	t.Helper()
	return testutil.NewSite(t).
		WithPost("posts/2022-old.md", testutil.YAMLPost("Old News", "2022-11-15", "The old body.")).
		WithPost("posts/2023-spring.md", testutil.YAMLPost("Spring Update", "2023-03-20", "Flowers everywhere.")).
		WithPost("posts/2023-summer.md", testutil.YAMLPost("Summer Notes", "2023-07-04", "Beach and barbecue.")).
		Build()
}

func mustLoad(t *testing.T, root string) *Collection {
	t.Helper()
	coll, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return coll
}

func TestLoadMissingRoot(t *testing.T) {
	_, err := Load("/nonexistent/content")
	if err == nil || !strings.Contains(err.Error(), "content directory not found") {
		t.Fatalf("Load on missing root = %v", err)
	}
}

func TestLoadDiscoversMarkdownOnly(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("a.md", testutil.YAMLPost("A", "2023-01-01", "Body.")).
		WithPost("nested/b.md", testutil.YAMLPost("B", "2023-02-01", "Body.")).
		WithPost("notes.txt", "not a post").
		WithPost(".obsidian/cache.md", "---\ntitle: hidden\n---\n").
		Build()

	coll := mustLoad(t, site.Path)
	if len(coll.Posts) != 2 {
		t.Fatalf("loaded %d posts, want 2", len(coll.Posts))
	}
	// Walk order is deterministic (lexicographic).
	if !strings.HasSuffix(coll.Posts[0].Path, "a.md") || !strings.HasSuffix(coll.Posts[1].Path, "b.md") {
		t.Errorf("unexpected discovery order: %s, %s", coll.Posts[0].Path, coll.Posts[1].Path)
	}
}

func TestLoadErrorsAreIsolated(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("good.md", testutil.YAMLPost("Good", "2023-01-01", "Body.")).
		WithPost("plain.md", "No frontmatter here.\n").
		WithPost("broken.md", "---\ntitle: [unclosed\n---\n\nBody.\n").
		Build()

	coll := mustLoad(t, site.Path)
	if len(coll.Posts) != 1 {
		t.Fatalf("loaded %d posts, want 1", len(coll.Posts))
	}
	if len(coll.LoadErrors) != 2 {
		t.Fatalf("got %d load errors, want 2: %+v", len(coll.LoadErrors), coll.LoadErrors)
	}

	var noFM, malformed int
	for _, le := range coll.LoadErrors {
		if le.NoFrontmatter {
			noFM++
		} else {
			malformed++
		}
	}
	if noFM != 1 || malformed != 1 {
		t.Errorf("load errors misclassified: %+v", coll.LoadErrors)
	}
}

func TestFilterRequiresCriteria(t *testing.T) {
	coll := mustLoad(t, datedSite(t).Path)

	_, err := coll.Filter(Criteria{})
	var selErr *SelectionError
	if !errors.As(err, &selErr) {
		t.Fatalf("Filter with no criteria = %v, want SelectionError", err)
	}
	if !strings.Contains(selErr.Reason, "--all") {
		t.Errorf("error should point at --all, got %q", selErr.Reason)
	}
}

func TestFilterAll(t *testing.T) {
	coll := mustLoad(t, datedSite(t).Path)
	selected, err := coll.Filter(Criteria{All: true})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(selected) != 3 {
		t.Errorf("selected %d, want 3", len(selected))
	}
}

func TestFilterTitleIsCaseInsensitiveSubstring(t *testing.T) {
	coll := mustLoad(t, datedSite(t).Path)
	selected, err := coll.Filter(Criteria{TitlePattern: "sPrInG"})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(selected) != 1 || selected[0].Title() != "Spring Update" {
		t.Errorf("selected = %v", titles(selected))
	}
}

func TestFilterTextSearchesBodyAndFrontmatter(t *testing.T) {
	coll := mustLoad(t, datedSite(t).Path)

	selected, err := coll.Filter(Criteria{TextPattern: "barbecue"})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(selected) != 1 || selected[0].Title() != "Summer Notes" {
		t.Errorf("body match selected = %v", titles(selected))
	}

	// Frontmatter text is searchable too.
	selected, err = coll.Filter(Criteria{TextPattern: "Old News"})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(selected) != 1 {
		t.Errorf("frontmatter match selected = %v", titles(selected))
	}
}

func TestFilterDateBoundsAreInclusive(t *testing.T) {
	coll := mustLoad(t, datedSite(t).Path)

	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local)
	selected, err := coll.Filter(Criteria{From: &from})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if got := titles(selected); len(got) != 2 || got[0] != "Spring Update" || got[1] != "Summer Notes" {
		t.Errorf("from-bound selected = %v", got)
	}

	// A bound equal to the post date matches.
	exact := time.Date(2023, 3, 20, 0, 0, 0, 0, time.Local)
	selected, err = coll.Filter(Criteria{From: &exact, To: &exact})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(selected) != 1 || selected[0].Title() != "Spring Update" {
		t.Errorf("exact-date selected = %v", titles(selected))
	}
}

func TestFilterDatelessPostNeverMatchesBounds(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("undated.md", "---\ntitle: Undated\n---\n\nBody.\n").
		WithPost("dated.md", testutil.YAMLPost("Dated", "2023-05-01", "Body.")).
		Build()
	coll := mustLoad(t, site.Path)

	from := time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local)
	selected, err := coll.Filter(Criteria{From: &from})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(selected) != 1 || selected[0].Title() != "Dated" {
		t.Errorf("selected = %v", titles(selected))
	}
}

func TestFilterCriteriaCombineAsAnd(t *testing.T) {
	coll := mustLoad(t, datedSite(t).Path)

	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local)
	selected, err := coll.Filter(Criteria{TitlePattern: "notes", From: &from})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(selected) != 1 || selected[0].Title() != "Summer Notes" {
		t.Errorf("combined selected = %v", titles(selected))
	}

	// All predicates must hold.
	selected, err = coll.Filter(Criteria{TitlePattern: "old", From: &from})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(selected) != 0 {
		t.Errorf("conflicting criteria selected = %v", titles(selected))
	}
}

func TestFilterExplicitPaths(t *testing.T) {
	site := datedSite(t)
	coll := mustLoad(t, site.Path)

	target := site.Path + "/posts/2023-spring.md"
	selected, err := coll.Filter(Criteria{Paths: []string{target}})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(selected) != 1 || selected[0].Title() != "Spring Update" {
		t.Errorf("selected = %v", titles(selected))
	}
}

func TestFilterMissingExplicitPathIsHardError(t *testing.T) {
	site := datedSite(t)
	coll := mustLoad(t, site.Path)

	missing := site.Path + "/posts/typo.md"
	_, err := coll.Filter(Criteria{Paths: []string{missing}})
	var selErr *SelectionError
	if !errors.As(err, &selErr) {
		t.Fatalf("Filter with bad path = %v, want SelectionError", err)
	}
	if !strings.Contains(selErr.Reason, "typo.md") {
		t.Errorf("error should name the missing path, got %q", selErr.Reason)
	}
}

func TestFilterZeroMatchesIsNotAnError(t *testing.T) {
	coll := mustLoad(t, datedSite(t).Path)
	selected, err := coll.Filter(Criteria{TitlePattern: "no such title"})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(selected) != 0 {
		t.Errorf("selected = %v", titles(selected))
	}
}

func titles(posts []*post.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title()
	}
	return out
}
