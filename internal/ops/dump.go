package ops

import (
	"fmt"
	"sort"
	"strings"

	"github.com/acormier/quill/internal/post"
)

// Dump reports the current value of one field across the selected
// posts without modifying anything. It also accumulates the set of
// distinct values seen, for the run summary.
type Dump struct {
	Field string
	Kind  FieldKind

	seen map[string]bool
}

// Name implements Operation.
func (d *Dump) Name() string {
	return fmt.Sprintf("dump %s field %q", d.Kind, d.Field)
}

// Apply implements Operation. Dump never writes; posts without the
// field are reported as unchanged.
func (d *Dump) Apply(p *post.Post, _ bool) Result {
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}

	if d.Kind == LabelField {
		value, present, err := p.Label(d.Field)
		if err != nil {
			return Result{Status: StatusErrored, Reason: err.Error()}
		}
		if !present {
			return Result{Status: StatusUnchanged, Detail: fmt.Sprintf("%s: (not set)", d.Field)}
		}
		d.seen[value] = true
		return Result{Status: StatusApplied, Detail: fmt.Sprintf("%s: %q", d.Field, value)}
	}

	values, err := p.List(d.Field)
	if err != nil {
		return Result{Status: StatusErrored, Reason: err.Error()}
	}
	if len(values) == 0 {
		return Result{Status: StatusUnchanged, Detail: fmt.Sprintf("%s: (not set)", d.Field)}
	}
	for _, v := range values {
		d.seen[v] = true
	}
	return Result{Status: StatusApplied, Detail: fmt.Sprintf("%s: [%s]", d.Field, strings.Join(values, ", "))}
}

// UniqueValues returns every distinct value seen, sorted.
func (d *Dump) UniqueValues() []string {
	out := make([]string, 0, len(d.seen))
	for v := range d.seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
