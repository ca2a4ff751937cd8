// Package ops applies one operation across a sequence of posts and
// accumulates the outcome summary other tooling depends on. Processing
// is sequential; a failure on one post never aborts the batch.
package ops

import (
	"github.com/acormier/quill/internal/post"
)

// Status is the terminal state of one post within a run.
type Status string

const (
	// StatusApplied means the operation changed the post (or would
	// have, in a dry run).
	StatusApplied Status = "applied"

	// StatusUnchanged means the operation evaluated to a no-op.
	StatusUnchanged Status = "unchanged"

	// StatusSkipped means the post was not eligible, e.g. no usable
	// date for a timestamp sync.
	StatusSkipped Status = "skipped"

	// StatusErrored means the operation failed on this post.
	StatusErrored Status = "errored"
)

// Result is the outcome for one post.
type Result struct {
	Path   string `json:"path"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Summary tallies a completed run. Failures are isolated per post and
// listed with reasons.
type Summary struct {
	Scanned   int      `json:"scanned"`
	Selected  int      `json:"selected"`
	Applied   int      `json:"applied"`
	Unchanged int      `json:"unchanged"`
	Skipped   int      `json:"skipped"`
	Errored   int      `json:"errored"`
	DryRun    bool     `json:"dry_run"`
	Results   []Result `json:"results,omitempty"`
}

// Failures returns the errored results.
func (s *Summary) Failures() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Status == StatusErrored {
			out = append(out, r)
		}
	}
	return out
}

// Operation is one transformation applied per post. Apply performs at
// most one write; in dry-run mode it must compute and report the
// would-be result without touching disk.
type Operation interface {
	Name() string
	Apply(p *post.Post, dryRun bool) Result
}

// Run applies op to each post in order. scanned is the size of the
// loaded collection, carried into the summary. report, when non-nil,
// is called once per result as it happens.
func Run(posts []*post.Post, op Operation, dryRun bool, scanned int, report func(Result)) Summary {
	summary := Summary{
		Scanned:  scanned,
		Selected: len(posts),
		DryRun:   dryRun,
	}

	for _, p := range posts {
		result := op.Apply(p, dryRun)
		result.Path = p.Path

		switch result.Status {
		case StatusApplied:
			summary.Applied++
		case StatusUnchanged:
			summary.Unchanged++
		case StatusSkipped:
			summary.Skipped++
		case StatusErrored:
			summary.Errored++
		}

		summary.Results = append(summary.Results, result)
		if report != nil {
			report(result)
		}
	}

	return summary
}
