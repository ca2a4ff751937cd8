package ops

import (
	"fmt"
	"os"
	"time"

	"github.com/acormier/quill/internal/post"
)

// SyncTimes sets each post file's modification time to its frontmatter
// date. Posts with no usable date are skipped and reported. The access
// time is set to the same instant as the modification time.
type SyncTimes struct{}

// Name implements Operation.
func (SyncTimes) Name() string { return "sync file times" }

// Apply implements Operation. Files already in sync (to the second)
// are left alone, so repeated runs are no-ops.
func (SyncTimes) Apply(p *post.Post, dryRun bool) Result {
	target, ok := p.Date()
	if !ok {
		return Result{Status: StatusSkipped, Reason: "no usable date in frontmatter"}
	}

	st, err := os.Stat(p.Path)
	if err != nil {
		return Result{Status: StatusErrored, Reason: err.Error()}
	}

	mtime := st.ModTime().Truncate(time.Second)
	want := target.Truncate(time.Second)
	if mtime.Equal(want) {
		return Result{Status: StatusUnchanged}
	}

	detail := fmt.Sprintf("mtime %s -> %s",
		mtime.Format("2006-01-02 15:04:05"), want.Format("2006-01-02 15:04:05"))

	if !dryRun {
		if err := os.Chtimes(p.Path, want, want); err != nil {
			return Result{Status: StatusErrored, Reason: err.Error()}
		}
	}
	return Result{Status: StatusApplied, Detail: detail}
}
