package wordpress

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/acormier/quill/internal/post"
	"github.com/acormier/quill/internal/testutil"
)

const sampleWXR = `<?xml version="1.0" encoding="UTF-8" ?>
<rss version="2.0"
	xmlns:excerpt="http://wordpress.org/export/1.2/excerpt/"
	xmlns:content="http://purl.org/rss/1.0/modules/content/"
	xmlns:dc="http://purl.org/dc/elements/1.1/"
	xmlns:wp="http://wordpress.org/export/1.2/">
<channel>
	<title>Example Blog</title>
	<item>
		<title>Hello World</title>
		<link>https://blog.example.com/2019/02/hello-world/</link>
		<dc:creator>pat</dc:creator>
		<content:encoded><![CDATA[<p>First <strong>post</strong> on the new blog.</p>]]></content:encoded>
		<excerpt:encoded><![CDATA[<p>A short greeting.</p>]]></excerpt:encoded>
		<wp:post_id>11</wp:post_id>
		<wp:post_date>2019-02-05 23:30:40</wp:post_date>
		<wp:post_modified>2019-02-05 23:30:40</wp:post_modified>
		<wp:post_name>hello-world</wp:post_name>
		<wp:status>publish</wp:status>
		<wp:post_type>post</wp:post_type>
		<category domain="category" nicename="general">General</category>
		<category domain="post_tag" nicename="intro">intro</category>
		<category domain="post_tag" nicename="meta">meta</category>
	</item>
	<item>
		<title>Unfinished Draft</title>
		<content:encoded><![CDATA[<p>Not ready.</p>]]></content:encoded>
		<wp:post_date>2019-03-01 10:00:00</wp:post_date>
		<wp:status>draft</wp:status>
		<wp:post_type>post</wp:post_type>
	</item>
	<item>
		<title>About</title>
		<content:encoded><![CDATA[<p>About this site.</p>]]></content:encoded>
		<wp:post_date>2019-01-01 09:00:00</wp:post_date>
		<wp:status>publish</wp:status>
		<wp:post_type>page</wp:post_type>
	</item>
	<item>
		<title>Attachment</title>
		<content:encoded></content:encoded>
		<wp:status>publish</wp:status>
		<wp:post_type>attachment</wp:post_type>
	</item>
</channel>
</rss>
`

func TestParseFiltersExportableItems(t *testing.T) {
	items, total, err := Parse(strings.NewReader(sampleWXR))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
	if len(items) != 1 {
		t.Fatalf("exportable = %d, want 1 (drafts, pages, attachments excluded)", len(items))
	}

	item := items[0]
	if item.Title != "Hello World" {
		t.Errorf("title = %q", item.Title)
	}
	if item.Creator != "pat" {
		t.Errorf("creator = %q", item.Creator)
	}
	if !strings.Contains(item.Content, "<strong>post</strong>") {
		t.Errorf("content = %q", item.Content)
	}
	if !strings.Contains(item.Excerpt, "short greeting") {
		t.Errorf("excerpt = %q", item.Excerpt)
	}
}

func TestItemDateIsUTC(t *testing.T) {
	item := Item{PostDate: "2019-02-05 23:30:40"}
	date, ok := item.Date()
	if !ok {
		t.Fatal("Date() should parse")
	}
	want := time.Date(2019, 2, 5, 23, 30, 40, 0, time.UTC)
	if !date.Equal(want) {
		t.Errorf("Date() = %v, want %v", date, want)
	}

	if _, ok := (Item{PostDate: "someday"}).Date(); ok {
		t.Error("malformed date should not parse")
	}
}

func TestItemURLDecodesPermalink(t *testing.T) {
	tests := []struct {
		item Item
		want string
	}{
		{Item{Link: "https://blog.example.com/2019/02/hello-world/"}, "/2019/02/hello-world/"},
		{Item{Link: "https://blog.example.com/2022/12/%cf%80-day/"}, "/2022/12/\u03c0-day/"},
		{Item{PostName: "fallback-slug"}, "/fallback-slug/"},
		{Item{PostID: "42"}, "/42/"},
	}
	for _, tt := range tests {
		if got := tt.item.URL(); got != tt.want {
			t.Errorf("URL() = %q, want %q", got, tt.want)
		}
	}
}

func TestItemFilename(t *testing.T) {
	item := Item{
		Title:    "Hello World",
		PostName: "hello-world",
		PostDate: "2019-02-05 23:30:40",
	}
	if got := item.Filename(); got != "2019-02-05-hello-world.md" {
		t.Errorf("Filename() = %q", got)
	}

	// No slug falls back to the title; no date drops the prefix.
	item = Item{Title: "An Untitled Thought!"}
	if got := item.Filename(); got != "an-untitled-thought.md" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestMarkdownFromHTMLBasics(t *testing.T) {
	src := `<p>Intro with a <a href="https://example.com">link</a> and <em>emphasis</em>.</p>
<h2>Section</h2>
<p>Inline <code>code()</code> and <strong>bold</strong>.</p>
<ul><li>one</li><li>two</li></ul>
<blockquote><p>quoted text</p></blockquote>
<img src="/img/cat.jpg" alt="a cat" />`

	got, err := MarkdownFromHTML(src)
	if err != nil {
		t.Fatalf("MarkdownFromHTML: %v", err)
	}

	for _, want := range []string{
		"Intro with a [link](https://example.com) and *emphasis*.",
		"## Section",
		"Inline `code()` and **bold**.",
		"- one\n- two",
		"> quoted text",
		"![a cat](/img/cat.jpg)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestMarkdownFromHTMLCodeFence(t *testing.T) {
	src := `<p>Apache config:</p>
<pre><code class="language-apache">&lt;VirtualHost *:80&gt;
  ServerName example.com
&lt;/VirtualHost&gt;</code></pre>`

	got, err := MarkdownFromHTML(src)
	if err != nil {
		t.Fatalf("MarkdownFromHTML: %v", err)
	}

	if !strings.Contains(got, "```apache\n") {
		t.Errorf("missing language fence:\n%s", got)
	}
	// Entity-encoded markup inside the block survives as literal text.
	if !strings.Contains(got, "<VirtualHost *:80>") {
		t.Errorf("code block lost its markup:\n%s", got)
	}
}

func TestMarkdownFromHTMLBareClassLanguage(t *testing.T) {
	src := `<pre><code class="python">print("hi")</code></pre>`
	got, err := MarkdownFromHTML(src)
	if err != nil {
		t.Fatalf("MarkdownFromHTML: %v", err)
	}
	if !strings.Contains(got, "```python\nprint(\"hi\")\n```") {
		t.Errorf("unexpected fence:\n%s", got)
	}
}

func TestMarkdownFromHTMLStripsCaptionShortcodes(t *testing.T) {
	src := `[caption id="attachment_1" align="aligncenter"]<img src="/pic.jpg" alt="pic" /> A caption.[/caption]`
	got, err := MarkdownFromHTML(src)
	if err != nil {
		t.Fatalf("MarkdownFromHTML: %v", err)
	}
	if strings.Contains(got, "[caption") || strings.Contains(got, "[/caption]") {
		t.Errorf("caption shortcode survived:\n%s", got)
	}
	if !strings.Contains(got, "![pic](/pic.jpg)") {
		t.Errorf("image lost:\n%s", got)
	}
}

func TestMarkdownFromHTMLOrderedAndNestedLists(t *testing.T) {
	src := `<ol><li>first</li><li>second<ul><li>nested</li></ul></li></ol>`
	got, err := MarkdownFromHTML(src)
	if err != nil {
		t.Fatalf("MarkdownFromHTML: %v", err)
	}
	for _, want := range []string{"1. first", "2. second", "  - nested"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("<p>A <em>short</em>\n greeting.</p>")
	if got != "A short greeting." {
		t.Errorf("PlainText() = %q", got)
	}
}

func TestStrayHTML(t *testing.T) {
	if got := StrayHTML("# Clean\n\nJust *markdown* here.\n"); got != nil {
		t.Errorf("clean markdown flagged: %v", got)
	}

	dirty := "Some text with a <table><tr><td>cell</td></tr></table> left over.\n"
	got := StrayHTML(dirty)
	if len(got) == 0 {
		t.Fatal("stray table not detected")
	}
	found := false
	for _, tag := range got {
		if tag == "table" {
			found = true
		}
	}
	if !found {
		t.Errorf("tags = %v, want to include table", got)
	}

	// Markup inside code fences is fine.
	fenced := "```\n<VirtualHost *:80>\n</VirtualHost>\n```\n"
	if got := StrayHTML(fenced); got != nil {
		t.Errorf("fenced markup flagged: %v", got)
	}
}

func TestMarkdownKeepsUnconvertibleMarkup(t *testing.T) {
	src := `<p>Before.</p>
<iframe src="https://player.example.com/v/42"></iframe>
<div>stray <marquee>tag</marquee></div>`

	got, err := MarkdownFromHTML(src)
	if err != nil {
		t.Fatalf("MarkdownFromHTML: %v", err)
	}

	// Unknown elements survive verbatim instead of being unwrapped to
	// bare text, so the review check below has something to find.
	for _, want := range []string{"<iframe", "<marquee>tag</marquee>"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if !strings.Contains(got, "stray <marquee>") {
		t.Errorf("surrounding text lost:\n%s", got)
	}

	stray := StrayHTML(got)
	for _, want := range []string{"iframe", "marquee"} {
		found := false
		for _, tag := range stray {
			if tag == want {
				found = true
			}
		}
		if !found {
			t.Errorf("stray tags = %v, want to include %s", stray, want)
		}
	}
}

func TestMarkdownUnwrapsCosmeticInlineMarkup(t *testing.T) {
	got, err := MarkdownFromHTML(`<p>H<sub>2</sub>O in a <span class="x">span</span>.</p>`)
	if err != nil {
		t.Fatalf("MarkdownFromHTML: %v", err)
	}
	if !strings.Contains(got, "H2O in a span.") {
		t.Errorf("cosmetic wrappers not unwrapped:\n%s", got)
	}
	if stray := StrayHTML(got); stray != nil {
		t.Errorf("cosmetic wrappers flagged: %v", stray)
	}
}

func TestImporterWritesPosts(t *testing.T) {
	site := testutil.NewSite(t).Build()

	imp := &Importer{OutputDir: site.Path}
	summary, err := imp.Run(strings.NewReader(sampleWXR), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Converted != 1 || summary.Errored != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	site.AssertFileExists("2019-02-05-hello-world.md")

	p, err := post.Load(site.Path + "/2019-02-05-hello-world.md")
	if err != nil {
		t.Fatalf("reload imported post: %v", err)
	}
	if p.Title() != "Hello World" {
		t.Errorf("title = %q", p.Title())
	}
	date, ok := p.Date()
	want := time.Date(2019, 2, 5, 23, 30, 40, 0, time.UTC)
	if !ok || !date.Equal(want) {
		t.Errorf("date = %v, %v", date, ok)
	}
	tags, err := p.List("tags")
	if err != nil {
		t.Fatalf("List(tags): %v", err)
	}
	if diff := cmp.Diff([]string{"intro", "meta"}, tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	url, _, _ := p.Label("url")
	if url != "/2019/02/hello-world/" {
		t.Errorf("url = %q", url)
	}
	if !strings.Contains(p.Body(), "First **post** on the new blog.") {
		t.Errorf("body = %q", p.Body())
	}

	// File times track the post date.
	if got := site.Mtime("2019-02-05-hello-world.md").UTC(); !got.Equal(want) {
		t.Errorf("mtime = %v, want %v", got, want)
	}
}

func TestImporterFlagsPostsNeedingReview(t *testing.T) {
	embedded := strings.Replace(sampleWXR,
		"<p>First <strong>post</strong> on the new blog.</p>",
		`<p>First post.</p><div>watch <marquee>this</marquee></div>`, 1)

	site := testutil.NewSite(t).Build()
	imp := &Importer{OutputDir: site.Path}
	summary, err := imp.Run(strings.NewReader(embedded), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Converted != 1 || summary.NeedsReview != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if diff := cmp.Diff([]string{"marquee"}, summary.Results[0].Stray); diff != "" {
		t.Errorf("stray tags mismatch (-want +got):\n%s", diff)
	}
	site.AssertFileContains("2019-02-05-hello-world.md", "<marquee>this</marquee>")
}

func TestImporterDryRunWritesNothing(t *testing.T) {
	site := testutil.NewSite(t).Build()

	imp := &Importer{OutputDir: site.Path + "/out", DryRun: true}
	summary, err := imp.Run(strings.NewReader(sampleWXR), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Converted != 1 || !summary.DryRun {
		t.Fatalf("summary = %+v", summary)
	}
	if site.FileExists("out") {
		t.Error("dry run created the output directory")
	}
}

func TestImporterLimit(t *testing.T) {
	// Duplicate the publishable item so the limit has something to cut.
	doubled := strings.Replace(sampleWXR,
		"</channel>",
		`<item>
			<title>Second Post</title>
			<link>https://blog.example.com/2019/03/second/</link>
			<content:encoded><![CDATA[<p>More words.</p>]]></content:encoded>
			<wp:post_date>2019-03-07 08:00:00</wp:post_date>
			<wp:post_name>second</wp:post_name>
			<wp:status>publish</wp:status>
			<wp:post_type>post</wp:post_type>
		</item>
		</channel>`, 1)

	site := testutil.NewSite(t).Build()
	imp := &Importer{OutputDir: site.Path, Limit: 1}
	summary, err := imp.Run(strings.NewReader(doubled), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Exportable != 2 || summary.Converted != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}
