package ops

import (
	"strings"
	"testing"
	"time"

	"github.com/acormier/quill/internal/content"
	"github.com/acormier/quill/internal/post"
	"github.com/acormier/quill/internal/testutil"
)

func loadAll(t *testing.T, site *testutil.Site) []*post.Post {
	t.Helper()
	coll, err := content.Load(site.Path)
	if err != nil {
		t.Fatalf("load collection: %v", err)
	}
	return coll.Posts
}

func TestFieldEditAddsToList(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("first.md", testutil.YAMLPost("First", "2023-05-01", "Body one.")).
		WithPost("second.md", testutil.YAMLPost("Second", "2023-06-01", "Body two.")).
		Build()

	op := &FieldEdit{Field: "tags", Kind: ListField, Add: []string{"hugo"}}
	summary := Run(loadAll(t, site), op, false, 2, nil)

	if summary.Applied != 2 || summary.Errored != 0 {
		t.Fatalf("expected 2 applied, got %+v", summary)
	}
	site.AssertFileContains("first.md", "hugo")
	site.AssertFileContains("second.md", "hugo")
}

func TestFieldEditAddIsIdempotent(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("post.md", testutil.YAMLPost("Post", "2023-05-01", "Body.")).
		Build()

	op := &FieldEdit{Field: "tags", Kind: ListField, Add: []string{"go"}}
	summary := Run(loadAll(t, site), op, false, 1, nil)

	if summary.Applied != 0 || summary.Unchanged != 1 {
		t.Fatalf("adding an existing value should be a no-op, got %+v", summary)
	}
}

func TestFieldEditRemoveAbsentIsNoOp(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("post.md", testutil.YAMLPost("Post", "2023-05-01", "Body.")).
		Build()
	before := site.ReadFile("post.md")

	op := &FieldEdit{Field: "tags", Kind: ListField, Remove: []string{"missing"}}
	summary := Run(loadAll(t, site), op, false, 1, nil)

	if summary.Unchanged != 1 {
		t.Fatalf("expected 1 unchanged, got %+v", summary)
	}
	if got := site.ReadFile("post.md"); got != before {
		t.Errorf("no-op run rewrote the file:\n%s", got)
	}
}

func TestFieldEditDetailShowsBeforeAndAfter(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("post.md", testutil.YAMLPost("Post", "2023-05-01", "Body.")).
		Build()

	op := &FieldEdit{Field: "tags", Kind: ListField, Add: []string{"hugo"}}
	summary := Run(loadAll(t, site), op, false, 1, nil)

	detail := summary.Results[0].Detail
	if !strings.Contains(detail, "[go]") || !strings.Contains(detail, "[go, hugo]") {
		t.Errorf("unexpected detail %q", detail)
	}
}

func TestDryRunNeverTouchesDisk(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("post.md", testutil.YAMLPost("Post", "2023-05-01", "Body.")).
		Build()

	stamp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.Local)
	site.Chtimes("post.md", stamp)
	before := site.ReadFile("post.md")

	op := &FieldEdit{Field: "tags", Kind: ListField, Add: []string{"hugo"}}
	summary := Run(loadAll(t, site), op, true, 1, nil)

	if !summary.DryRun || summary.Applied != 1 {
		t.Fatalf("expected 1 would-apply under dry run, got %+v", summary)
	}
	if got := site.ReadFile("post.md"); got != before {
		t.Errorf("dry run modified file contents:\n%s", got)
	}
	if mtime := site.Mtime("post.md"); !mtime.Equal(stamp) {
		t.Errorf("dry run modified mtime: %s", mtime)
	}
}

func TestTypeMismatchIsolatedPerPost(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("bad.md", "---\ntitle: Bad\ntags: not-a-list\n---\n\nBody.\n").
		WithPost("good.md", testutil.YAMLPost("Good", "2023-05-01", "Body.")).
		Build()

	op := &FieldEdit{Field: "tags", Kind: ListField, Add: []string{"hugo"}}
	summary := Run(loadAll(t, site), op, false, 2, nil)

	if summary.Errored != 1 || summary.Applied != 1 {
		t.Fatalf("expected 1 errored and 1 applied, got %+v", summary)
	}
	failures := summary.Failures()
	if len(failures) != 1 || !strings.Contains(failures[0].Reason, "not a list") {
		t.Fatalf("unexpected failures %+v", failures)
	}
	site.AssertFileContains("good.md", "hugo")
	site.AssertFileNotContains("bad.md", "hugo")
}

func TestLabelSetAndRemove(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("post.md", testutil.YAMLPost("Post", "2023-05-01", "Body.")).
		Build()
	posts := loadAll(t, site)

	draft := "true"
	set := &FieldEdit{Field: "draft", Kind: LabelField, Set: &draft}
	if s := Run(posts, set, false, 1, nil); s.Applied != 1 {
		t.Fatalf("set: expected 1 applied, got %+v", s)
	}
	site.AssertFileContains("post.md", "draft")

	posts = loadAll(t, site)
	remove := &FieldEdit{Field: "draft", Kind: LabelField, RemoveLabel: true}
	if s := Run(posts, remove, false, 1, nil); s.Applied != 1 {
		t.Fatalf("remove: expected 1 applied, got %+v", s)
	}
	site.AssertFileNotContains("post.md", "draft")
}

func TestLabelRemoveAbsentIsNoOp(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("post.md", testutil.YAMLPost("Post", "2023-05-01", "Body.")).
		Build()

	op := &FieldEdit{Field: "series", Kind: LabelField, RemoveLabel: true}
	summary := Run(loadAll(t, site), op, false, 1, nil)

	if summary.Unchanged != 1 {
		t.Fatalf("expected 1 unchanged, got %+v", summary)
	}
}

func TestSyncTimesAppliesAndConverges(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("post.md", testutil.YAMLPost("Post", "2023-05-01", "Body.")).
		Build()
	site.Chtimes("post.md", time.Date(2024, 12, 1, 0, 0, 0, 0, time.Local))

	posts := loadAll(t, site)
	summary := Run(posts, SyncTimes{}, false, 1, nil)
	if summary.Applied != 1 {
		t.Fatalf("expected 1 applied, got %+v", summary)
	}

	want := time.Date(2023, 5, 1, 0, 0, 0, 0, time.Local)
	if got := site.Mtime("post.md").Truncate(time.Second); !got.Equal(want) {
		t.Errorf("mtime = %s, want %s", got, want)
	}

	// Second run is a no-op.
	summary = Run(posts, SyncTimes{}, false, 1, nil)
	if summary.Unchanged != 1 || summary.Applied != 0 {
		t.Fatalf("expected convergence, got %+v", summary)
	}
}

func TestSyncTimesSkipsUndatedPosts(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("post.md", "---\ntitle: No Date\n---\n\nBody.\n").
		Build()

	summary := Run(loadAll(t, site), SyncTimes{}, false, 1, nil)
	if summary.Skipped != 1 {
		t.Fatalf("expected 1 skipped, got %+v", summary)
	}
	if reason := summary.Results[0].Reason; !strings.Contains(reason, "no usable date") {
		t.Errorf("unexpected skip reason %q", reason)
	}
}

func TestSyncTimesDryRunLeavesMtime(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("post.md", testutil.YAMLPost("Post", "2023-05-01", "Body.")).
		Build()
	stamp := time.Date(2024, 12, 1, 0, 0, 0, 0, time.Local)
	site.Chtimes("post.md", stamp)

	summary := Run(loadAll(t, site), SyncTimes{}, true, 1, nil)
	if summary.Applied != 1 {
		t.Fatalf("expected 1 would-apply, got %+v", summary)
	}
	if got := site.Mtime("post.md"); !got.Equal(stamp) {
		t.Errorf("dry run changed mtime to %s", got)
	}
}

func TestDumpCollectsUniqueValues(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("first.md", "---\ntitle: First\ntags:\n  - go\n  - hugo\n---\n\nBody.\n").
		WithPost("second.md", "---\ntitle: Second\ntags:\n  - go\n---\n\nBody.\n").
		WithPost("third.md", "---\ntitle: Third\n---\n\nBody.\n").
		Build()

	op := &Dump{Field: "tags", Kind: ListField}
	summary := Run(loadAll(t, site), op, true, 3, nil)

	if summary.Applied != 2 || summary.Unchanged != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	got := op.UniqueValues()
	if len(got) != 2 || got[0] != "go" || got[1] != "hugo" {
		t.Errorf("UniqueValues() = %v", got)
	}
}

func TestDumpLabelField(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("post.md", "---\ntitle: Post\nseries: Walkthrough\n---\n\nBody.\n").
		Build()

	op := &Dump{Field: "series", Kind: LabelField}
	summary := Run(loadAll(t, site), op, true, 1, nil)

	if summary.Applied != 1 {
		t.Fatalf("expected 1 reported, got %+v", summary)
	}
	if detail := summary.Results[0].Detail; !strings.Contains(detail, "Walkthrough") {
		t.Errorf("unexpected detail %q", detail)
	}
	if got := op.UniqueValues(); len(got) != 1 || got[0] != "Walkthrough" {
		t.Errorf("UniqueValues() = %v", got)
	}
}

func TestRunReportsResultsInOrder(t *testing.T) {
	site := testutil.NewSite(t).
		WithPost("a.md", testutil.YAMLPost("A", "2023-01-01", "Body.")).
		WithPost("b.md", testutil.YAMLPost("B", "2023-02-01", "Body.")).
		Build()

	var paths []string
	op := &FieldEdit{Field: "tags", Kind: ListField, Add: []string{"hugo"}}
	summary := Run(loadAll(t, site), op, true, 5, func(r Result) {
		paths = append(paths, r.Path)
	})

	if summary.Scanned != 5 || summary.Selected != 2 {
		t.Fatalf("unexpected tallies %+v", summary)
	}
	if len(paths) != 2 || !strings.HasSuffix(paths[0], "a.md") || !strings.HasSuffix(paths[1], "b.md") {
		t.Errorf("report order = %v", paths)
	}
}
