package ops

import (
	"fmt"
	"strings"

	"github.com/acormier/quill/internal/post"
)

// FieldKind selects which mutation semantics a field operation uses.
// The kind is chosen by the caller, never inferred from the stored
// value's shape.
type FieldKind int

const (
	// ListField is an ordered sequence of unique string values.
	ListField FieldKind = iota

	// LabelField is a single scalar value.
	LabelField
)

func (k FieldKind) String() string {
	if k == LabelField {
		return "label"
	}
	return "list"
}

// FieldEdit mutates one metadata field across the selected posts.
//
// For list fields, Add unions values in (dedup, first-seen order) and
// Remove drops them (absent values are no-ops). For label fields, Set
// overwrites the value and RemoveLabel deletes the field entirely.
type FieldEdit struct {
	Field string
	Kind  FieldKind

	Add    []string
	Remove []string

	Set         *string
	RemoveLabel bool
}

// Name implements Operation.
func (e *FieldEdit) Name() string {
	return fmt.Sprintf("edit %s field %q", e.Kind, e.Field)
}

// Apply implements Operation. A type mismatch between the requested
// kind and the stored value errors this post without aborting the
// batch.
func (e *FieldEdit) Apply(p *post.Post, dryRun bool) Result {
	var (
		changed bool
		detail  string
		err     error
	)
	if e.Kind == LabelField {
		changed, detail, err = e.applyLabel(p)
	} else {
		changed, detail, err = e.applyList(p)
	}
	if err != nil {
		return Result{Status: StatusErrored, Reason: err.Error()}
	}
	if !changed {
		return Result{Status: StatusUnchanged}
	}

	if !dryRun {
		if err := p.Save(); err != nil {
			return Result{Status: StatusErrored, Reason: err.Error()}
		}
	}
	return Result{Status: StatusApplied, Detail: detail}
}

func (e *FieldEdit) applyList(p *post.Post) (bool, string, error) {
	before, err := p.List(e.Field)
	if err != nil {
		return false, "", err
	}

	added, err := p.AddToList(e.Field, e.Add)
	if err != nil {
		return false, "", err
	}
	removed, err := p.RemoveFromList(e.Field, e.Remove)
	if err != nil {
		return false, "", err
	}
	if !added && !removed {
		return false, "", nil
	}

	after, _ := p.List(e.Field)
	return true, fmt.Sprintf("%s: [%s] -> [%s]",
		e.Field, strings.Join(before, ", "), strings.Join(after, ", ")), nil
}

func (e *FieldEdit) applyLabel(p *post.Post) (bool, string, error) {
	current, present, err := p.Label(e.Field)
	if err != nil {
		return false, "", err
	}

	if e.RemoveLabel {
		if !present {
			return false, "", nil
		}
		p.Remove(e.Field)
		return true, fmt.Sprintf("%s: %q -> (removed)", e.Field, current), nil
	}

	if e.Set == nil {
		return false, "", nil
	}
	if present && current == *e.Set {
		return false, "", nil
	}
	p.SetLabel(e.Field, *e.Set)
	if present {
		return true, fmt.Sprintf("%s: %q -> %q", e.Field, current, *e.Set), nil
	}
	return true, fmt.Sprintf("%s: (unset) -> %q", e.Field, *e.Set), nil
}
