package wordpress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/acormier/quill/internal/frontmatter"
	"github.com/acormier/quill/internal/post"
)

// Importer converts a WXR export into markdown files under OutputDir.
type Importer struct {
	OutputDir string

	// Limit caps how many posts are converted; zero means no cap.
	Limit int

	// DryRun converts and reports without writing anything.
	DryRun bool
}

// Result is the outcome for one exported item.
type Result struct {
	Title    string   `json:"title"`
	Filename string   `json:"filename"`
	Path     string   `json:"path"`
	Stray    []string `json:"stray_html,omitempty"`
	Err      string   `json:"error,omitempty"`
}

// Summary tallies a completed import.
type Summary struct {
	TotalItems  int      `json:"total_items"`
	Exportable  int      `json:"exportable"`
	Converted   int      `json:"converted"`
	Errored     int      `json:"errored"`
	NeedsReview int      `json:"needs_review"`
	DryRun      bool     `json:"dry_run"`
	Results     []Result `json:"results,omitempty"`
}

// Run parses the export and converts each publishable post. Conversion
// failures are per-item; the batch always completes. report, when
// non-nil, is called once per result as it happens.
func (imp *Importer) Run(r io.Reader, report func(Result)) (*Summary, error) {
	items, total, err := Parse(r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalItems: total,
		Exportable: len(items),
		DryRun:     imp.DryRun,
	}

	if imp.Limit > 0 && len(items) > imp.Limit {
		items = items[:imp.Limit]
	}

	if !imp.DryRun {
		if err := os.MkdirAll(imp.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	for _, item := range items {
		result := imp.convertOne(item)
		switch {
		case result.Err != "":
			summary.Errored++
		default:
			summary.Converted++
			if len(result.Stray) > 0 {
				summary.NeedsReview++
			}
		}
		summary.Results = append(summary.Results, result)
		if report != nil {
			report(result)
		}
	}

	return summary, nil
}

func (imp *Importer) convertOne(item Item) Result {
	result := Result{
		Title:    item.Title,
		Filename: item.Filename(),
	}
	result.Path = filepath.Join(imp.OutputDir, result.Filename)

	body, err := MarkdownFromHTML(item.Content)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	result.Stray = StrayHTML(body)

	p := post.New(result.Path, frontmatter.FormatYAML, itemFrontmatter(item), "\n"+body)

	if imp.DryRun {
		return result
	}

	if err := p.Save(); err != nil {
		result.Err = err.Error()
		return result
	}
	if date, ok := item.Date(); ok {
		if err := os.Chtimes(result.Path, date, date); err != nil {
			result.Err = fmt.Sprintf("set file times: %v", err)
		}
	}
	return result
}

// itemFrontmatter builds the Hugo metadata block for one item. The url
// field preserves the old WordPress permalink so existing links keep
// working.
func itemFrontmatter(item Item) *frontmatter.Mapping {
	m := frontmatter.NewMapping()
	m.Set("title", frontmatter.String(item.Title))
	if date, ok := item.Date(); ok {
		m.Set("date", frontmatter.Datetime(date, true))
	}
	if modified, ok := item.Modified(); ok {
		if date, hasDate := item.Date(); !hasDate || !modified.Equal(date) {
			m.Set("lastmod", frontmatter.Datetime(modified, true))
		}
	}
	m.Set("url", frontmatter.String(item.URL()))
	if categories := item.Categories(); len(categories) > 0 {
		m.Set("categories", frontmatter.StringList(categories))
	}
	if tags := item.Tags(); len(tags) > 0 {
		m.Set("tags", frontmatter.StringList(tags))
	}
	if excerpt := PlainText(item.Excerpt); excerpt != "" {
		m.Set("description", frontmatter.String(excerpt))
	}
	m.Set("draft", frontmatter.Bool(false))
	return m
}
