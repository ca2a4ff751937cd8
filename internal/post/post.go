// Package post holds the in-memory representation of one content file:
// its decoded frontmatter, verbatim body, and detected format, plus the
// typed field operations batch commands are built from.
package post

import (
	"fmt"
	"os"
	"time"

	"github.com/acormier/quill/internal/atomicfile"
	"github.com/acormier/quill/internal/dates"
	"github.com/acormier/quill/internal/frontmatter"
)

// Post is one loaded content file. Mutations are in-memory only until
// Save is called, so dry runs can inspect results without touching disk.
type Post struct {
	// Path is the file's location and its identity within a run.
	Path string

	// Format is the frontmatter format detected at load time.
	Format frontmatter.Format

	meta  *frontmatter.Mapping
	body  string
	raw   []byte
	dirty bool
}

// Well-known field names.
const (
	FieldTitle = "title"
	FieldDate  = "date"
)

// Load reads and decodes a content file.
//
// Files without a recognized frontmatter block fail with
// frontmatter.ErrNoFrontmatter; unparsable blocks fail with
// *frontmatter.MalformedError.
func Load(path string) (*Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	format, meta, body, err := frontmatter.Decode(raw)
	if err != nil {
		return nil, err
	}

	return &Post{
		Path:   path,
		Format: format,
		meta:   meta,
		body:   body,
		raw:    raw,
	}, nil
}

// New builds an in-memory post that does not yet exist on disk, used by
// importers. The first Save encodes it in the given format.
func New(path string, format frontmatter.Format, meta *frontmatter.Mapping, body string) *Post {
	if meta == nil {
		meta = frontmatter.NewMapping()
	}
	return &Post{
		Path:   path,
		Format: format,
		meta:   meta,
		body:   body,
		dirty:  true,
	}
}

// Title returns the post title, or "" when absent.
func (p *Post) Title() string {
	v, ok := p.meta.Get(FieldTitle)
	if !ok {
		return ""
	}
	if s, ok := v.AsString(); ok {
		return s
	}
	return v.Display()
}

// Date returns the post date as a single normalized instant. It accepts
// native temporal values and date or datetime strings. The second return
// is false when the field is missing or unparsable; callers are expected
// to skip-and-report rather than abort.
func (p *Post) Date() (time.Time, bool) {
	v, ok := p.meta.Get(FieldDate)
	if !ok {
		return time.Time{}, false
	}
	if t, ok := v.AsTime(); ok {
		return t, true
	}
	if s, ok := v.AsString(); ok {
		parsed, err := dates.ParseAny(s)
		if err != nil {
			return time.Time{}, false
		}
		return parsed.Time, true
	}
	return time.Time{}, false
}

// Body returns the verbatim body text.
func (p *Post) Body() string {
	return p.body
}

// FullText returns the raw frontmatter block and body together, for
// whole-document text matching.
func (p *Post) FullText() string {
	if len(p.raw) > 0 {
		return string(p.raw)
	}
	return p.body
}

// Metadata exposes the underlying mapping for read-only walks (dump,
// reporting). Mutating it directly bypasses dirty tracking.
func (p *Post) Metadata() *frontmatter.Mapping {
	return p.meta
}

// Modified reports whether any field operation changed the post since
// load.
func (p *Post) Modified() bool {
	return p.dirty
}

// Save writes the post to its path atomically. A post with no modified
// fields writes its original bytes back verbatim, preserving formatting,
// key order, and quoting exactly. Modified posts re-encode the metadata
// block in recorded key order. On any failure mid-write the original
// file is untouched.
func (p *Post) Save() error {
	data := p.raw
	if p.dirty {
		encoded, err := frontmatter.Encode(p.Format, p.meta, p.body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", p.Path, err)
		}
		data = encoded
	}

	if err := atomicfile.WriteFile(p.Path, data, 0); err != nil {
		return fmt.Errorf("write %s: %w", p.Path, err)
	}
	return nil
}
