// Package wordpress converts WordPress WXR exports into Hugo posts:
// WXR parsing, HTML to markdown conversion, and a stray-markup check
// on the converted output.
package wordpress

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// WXR namespace URIs.
const (
	nsContent = "http://purl.org/rss/1.0/modules/content/"
	nsExcerpt = "http://wordpress.org/export/1.2/excerpt/"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsWP      = "http://wordpress.org/export/1.2/"
)

// wxrDateLayout is how WordPress writes post dates. The values carry no
// offset; the site convention treats them as UTC.
const wxrDateLayout = "2006-01-02 15:04:05"

// Item is one <item> from a WXR export: a post, page, attachment, or
// other WordPress object.
type Item struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	Creator string `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Content string `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
	Excerpt string `xml:"http://wordpress.org/export/1.2/excerpt/ encoded"`

	PostID       string     `xml:"http://wordpress.org/export/1.2/ post_id"`
	PostDate     string     `xml:"http://wordpress.org/export/1.2/ post_date"`
	PostModified string     `xml:"http://wordpress.org/export/1.2/ post_modified"`
	PostName     string     `xml:"http://wordpress.org/export/1.2/ post_name"`
	Status       string     `xml:"http://wordpress.org/export/1.2/ status"`
	PostType     string     `xml:"http://wordpress.org/export/1.2/ post_type"`
	Taxonomies   []Taxonomy `xml:"category"`
}

// Taxonomy is a <category> element; the domain attribute separates real
// categories from post tags.
type Taxonomy struct {
	Domain   string `xml:"domain,attr"`
	NiceName string `xml:"nicename,attr"`
	Name     string `xml:",chardata"`
}

type wxrDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []Item `xml:"item"`
	} `xml:"channel"`
}

// Parse reads a WXR export and returns its items, in document order,
// along with the total item count before filtering.
func Parse(r io.Reader) ([]Item, int, error) {
	var doc wxrDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, 0, fmt.Errorf("parse WXR export: %w", err)
	}

	total := len(doc.Channel.Items)
	var exportable []Item
	for _, item := range doc.Channel.Items {
		if item.ShouldExport() {
			exportable = append(exportable, item)
		}
	}
	return exportable, total, nil
}

// ShouldExport reports whether this item becomes a Hugo post: published
// posts with content, never pages, attachments, or drafts.
func (it Item) ShouldExport() bool {
	return it.Status == "publish" &&
		it.PostType == "post" &&
		strings.TrimSpace(it.Content) != ""
}

// Date parses the post date. The second return is false when the field
// is absent or malformed.
func (it Item) Date() (time.Time, bool) {
	t, err := time.ParseInLocation(wxrDateLayout, strings.TrimSpace(it.PostDate), time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Modified parses the last-modified date, when present.
func (it Item) Modified() (time.Time, bool) {
	t, err := time.ParseInLocation(wxrDateLayout, strings.TrimSpace(it.PostModified), time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// URL returns the site-relative permalink path with percent-encoding
// decoded, preserving the date-based structure WordPress used, so old
// links keep resolving after the move.
func (it Item) URL() string {
	if it.Link != "" {
		if u, err := url.Parse(it.Link); err == nil && u.Path != "" {
			return u.Path
		}
	}
	if it.PostName != "" {
		return "/" + it.PostName + "/"
	}
	return "/" + it.PostID + "/"
}

// Slug returns the URL-safe name for the post file, preferring the
// WordPress slug over a slugified title.
func (it Item) Slug() string {
	if it.PostName != "" {
		return slug.Make(it.PostName)
	}
	return slug.Make(it.Title)
}

// Filename returns the target markdown filename, date-prefixed so the
// directory sorts chronologically.
func (it Item) Filename() string {
	name := it.Slug()
	if date, ok := it.Date(); ok {
		return fmt.Sprintf("%s-%s.md", date.Format("2006-01-02"), name)
	}
	return name + ".md"
}

// Categories returns the item's category names, in document order.
func (it Item) Categories() []string {
	return it.taxonomy("category")
}

// Tags returns the item's post tag names, in document order.
func (it Item) Tags() []string {
	return it.taxonomy("post_tag")
}

func (it Item) taxonomy(domain string) []string {
	var out []string
	for _, tax := range it.Taxonomies {
		if tax.Domain == domain && tax.Name != "" {
			out = append(out, tax.Name)
		}
	}
	return out
}
