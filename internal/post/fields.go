package post

import (
	"fmt"

	"github.com/acormier/quill/internal/frontmatter"
)

// TypeMismatchError reports a field operation applied with the wrong
// field kind, e.g. list semantics requested on a scalar value. The
// stored value is never coerced.
type TypeMismatchError struct {
	Field string
	Want  string
	Got   frontmatter.Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q holds a %s value, not a %s", e.Field, e.Got, e.Want)
}

// List returns a list field's values in stored order. A missing field
// yields an empty slice; a field holding anything other than a sequence
// of strings is a type mismatch.
func (p *Post) List(name string) ([]string, error) {
	v, ok := p.meta.Get(name)
	if !ok {
		return nil, nil
	}
	values, ok := v.AsStringSlice()
	if !ok {
		return nil, &TypeMismatchError{Field: name, Want: "list", Got: v.Kind()}
	}
	return values, nil
}

// SetList replaces a list field's values. An empty slice removes the
// field.
func (p *Post) SetList(name string, values []string) {
	if len(values) == 0 {
		p.Remove(name)
		return
	}
	p.meta.Set(name, frontmatter.StringList(values))
	p.dirty = true
}

// AddToList unions values into a list field: existing values keep their
// order, new values append in the order given, duplicates are dropped.
// Returns true when the field changed.
func (p *Post) AddToList(name string, values []string) (bool, error) {
	current, err := p.List(name)
	if err != nil {
		return false, err
	}

	seen := make(map[string]bool, len(current))
	for _, v := range current {
		seen[v] = true
	}

	merged := current
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		merged = append(merged, v)
	}

	if len(merged) == len(current) {
		return false, nil
	}
	p.SetList(name, merged)
	return true, nil
}

// RemoveFromList drops values from a list field. Removing values that
// are not present is a no-op. Returns true when the field changed.
func (p *Post) RemoveFromList(name string, values []string) (bool, error) {
	current, err := p.List(name)
	if err != nil {
		return false, err
	}
	if len(current) == 0 {
		return false, nil
	}

	drop := make(map[string]bool, len(values))
	for _, v := range values {
		drop[v] = true
	}

	var kept []string
	for _, v := range current {
		if !drop[v] {
			kept = append(kept, v)
		}
	}

	if len(kept) == len(current) {
		return false, nil
	}
	p.SetList(name, kept)
	return true, nil
}

// Label returns a label field's scalar value. The second return is
// false when the field is absent. A field holding a sequence or mapping
// is a type mismatch.
func (p *Post) Label(name string) (string, bool, error) {
	v, ok := p.meta.Get(name)
	if !ok {
		return "", false, nil
	}
	switch v.Kind() {
	case frontmatter.KindList, frontmatter.KindMap:
		return "", false, &TypeMismatchError{Field: name, Want: "label", Got: v.Kind()}
	}
	return v.Display(), true, nil
}

// SetLabel overwrites a label field's value, creating it if absent.
func (p *Post) SetLabel(name, value string) {
	p.meta.Set(name, frontmatter.String(value))
	p.dirty = true
}

// Remove deletes a field of either kind. Removing an absent field is a
// no-op, so bulk removals are idempotent. Returns true when the field
// existed.
func (p *Post) Remove(name string) bool {
	if p.meta.Delete(name) {
		p.dirty = true
		return true
	}
	return false
}
