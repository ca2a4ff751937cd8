package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/acormier/quill/internal/content"
	"github.com/acormier/quill/internal/dates"
	"github.com/acormier/quill/internal/post"
	"github.com/acormier/quill/internal/ui"
)

// selectionFlags holds the shared post-selection flags. Every batch
// command carries the same set so selections compose the same way
// everywhere.
type selectionFlags struct {
	all   bool
	title string
	text  string
	from  string
	to    string
	paths []string
}

func addSelectionFlags(cmd *cobra.Command, sel *selectionFlags) {
	cmd.Flags().BoolVar(&sel.all, "all", false, "Select all posts")
	cmd.Flags().StringVar(&sel.title, "title", "", "Select posts with title containing PATTERN")
	cmd.Flags().StringVar(&sel.text, "text", "", "Select posts with PATTERN anywhere in frontmatter or body")
	cmd.Flags().StringVar(&sel.from, "from", "", "Select posts dated on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&sel.to, "to", "", "Select posts dated on or before YYYY-MM-DD")
	cmd.Flags().StringSliceVar(&sel.paths, "path", nil, "Select posts by file path (repeatable)")
}

// criteria converts the parsed flags into selection criteria. The --to
// bound covers the whole named day, so posts with an intraday time on
// the end date still match.
func (sel *selectionFlags) criteria() (content.Criteria, error) {
	c := content.Criteria{
		All:          sel.all,
		TitlePattern: sel.title,
		TextPattern:  sel.text,
		Paths:        sel.paths,
	}

	if sel.from != "" {
		t, err := dates.ParseDate(sel.from)
		if err != nil {
			return c, fmt.Errorf("invalid --from date %q: use YYYY-MM-DD", sel.from)
		}
		c.From = &t
	}
	if sel.to != "" {
		t, err := dates.ParseDate(sel.to)
		if err != nil {
			return c, fmt.Errorf("invalid --to date %q: use YYYY-MM-DD", sel.to)
		}
		end := t.Add(24*time.Hour - time.Second)
		c.To = &end
	}

	return c, nil
}

// loadCollection loads the content directory and reports per-file load
// problems: stderr notes in text mode, structured warnings in JSON mode.
func loadCollection() (*content.Collection, []Warning, error) {
	coll, err := content.Load(getContentDir())
	if err != nil {
		return nil, nil, handleError(ErrContentDirNotFound, err,
			"Pass --content-dir or set content_dir in ~/.config/quill/config.toml")
	}

	var warnings []Warning
	for _, le := range coll.LoadErrors {
		code := WarnLoadFailed
		if le.NoFrontmatter {
			code = WarnNoFrontmatter
		}
		warnings = append(warnings, Warning{Code: code, Message: le.Reason, Path: le.Path})
		if !isJSONOutput() {
			fmt.Fprintln(os.Stderr, ui.Warningf("skipping %s: %s", le.Path, le.Reason))
		}
	}
	return coll, warnings, nil
}

// selectPosts applies criteria to a loaded collection, mapping the two
// selection failure modes onto stable error codes.
func selectPosts(coll *content.Collection, sel *selectionFlags) ([]*post.Post, error) {
	criteria, err := sel.criteria()
	if err != nil {
		return nil, handleError(ErrInvalidInput, err, "")
	}

	selected, err := coll.Filter(criteria)
	if err != nil {
		var selErr *content.SelectionError
		if errors.As(err, &selErr) {
			code := ErrNoSelection
			suggestion := "Combine --all, --title, --text, --from, --to, or --path"
			if len(criteria.Paths) > 0 {
				code = ErrPathNotFound
				suggestion = "Check the path against the content directory"
			}
			return nil, handleErrorMsg(code, selErr.Reason, suggestion)
		}
		return nil, handleError(ErrInternal, err, "")
	}
	return selected, nil
}
