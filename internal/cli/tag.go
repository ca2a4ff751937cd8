package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acormier/quill/internal/content"
	"github.com/acormier/quill/internal/ops"
	"github.com/acormier/quill/internal/post"
	"github.com/acormier/quill/internal/ui"
)

var tagSelection selectionFlags

var (
	tagCategories bool
	tagListField  string
	tagLabelField string

	tagAdd    []string
	tagRemove []string
	tagSet    string
	tagSetSet bool
	tagUnset  bool
	tagDump   bool
	tagDryRun bool
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags, categories, and custom fields across posts",
	Long: `Adds, removes, sets, or reports frontmatter fields across the selected posts.

Operates on the tags list by default; --categories switches to categories,
and --list/--label address any custom field by name. Whether a field is
treated as a list or a single label is chosen by these flags, never
guessed from the stored value.

Examples:
  quill tag --all --add python                 # add a tag everywhere
  quill tag --title docker --remove draft      # drop a tag by title match
  quill tag --from 2023-01-01 --add ai,ml      # tag posts in a date range
  quill tag --all --categories --add Tech      # categories instead of tags
  quill tag --title "My Post" --label status --set published
  quill tag --text "old post" --label series --unset
  quill tag --all --dump                       # report tags without changes
  quill tag --all --add test --dry-run         # preview only`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tagSetSet = cmd.Flags().Changed("set")

		field, kind, err := tagField()
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if err := validateTagOperations(kind); err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		coll, warnings, err := loadCollection()
		if err != nil || coll == nil {
			return err
		}
		selected, err := selectPosts(coll, &tagSelection)
		if err != nil {
			return err
		}

		if tagDump {
			return runTagDump(coll, selected, field, kind, warnings)
		}

		op := &ops.FieldEdit{
			Field:       field,
			Kind:        kind,
			Add:         tagAdd,
			Remove:      tagRemove,
			RemoveLabel: tagUnset,
		}
		if kind == ops.LabelField && tagSetSet {
			value := tagSet
			op.Set = &value
			op.Remove = nil
		}

		var report func(ops.Result)
		if !isJSONOutput() {
			report = printTagResult
		}
		summary := ops.Run(selected, op, tagDryRun, len(coll.Posts), report)

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{
				"field":   field,
				"kind":    kind.String(),
				"summary": summary,
			}, warnings, &Meta{Count: summary.Selected})
			return nil
		}

		printRunSummary(&summary)
		return nil
	},
}

// tagField resolves which field the command addresses and with which
// semantics. Exactly one of the field flags may be used.
func tagField() (string, ops.FieldKind, error) {
	picked := 0
	for _, on := range []bool{tagCategories, tagListField != "", tagLabelField != ""} {
		if on {
			picked++
		}
	}
	if picked > 1 {
		return "", 0, fmt.Errorf("only one of --categories, --list, or --label can be specified")
	}

	switch {
	case tagLabelField != "":
		return tagLabelField, ops.LabelField, nil
	case tagListField != "":
		return tagListField, ops.ListField, nil
	case tagCategories:
		return "categories", ops.ListField, nil
	default:
		return "tags", ops.ListField, nil
	}
}

func validateTagOperations(kind ops.FieldKind) error {
	if tagDump {
		if len(tagAdd) > 0 || len(tagRemove) > 0 || tagSetSet || tagUnset {
			return fmt.Errorf("cannot combine --dump with --add, --remove, --set, or --unset")
		}
		return nil
	}

	if kind == ops.LabelField {
		if !tagSetSet && !tagUnset {
			return fmt.Errorf("label fields need an operation: --set or --unset")
		}
		if len(tagAdd) > 0 || len(tagRemove) > 0 {
			return fmt.Errorf("--add and --remove apply to list fields; use --set or --unset for labels")
		}
		return nil
	}

	if len(tagAdd) == 0 && len(tagRemove) == 0 {
		return fmt.Errorf("list fields need an operation: --add or --remove")
	}
	if tagSetSet || tagUnset {
		return fmt.Errorf("--set and --unset apply to label fields; use --add or --remove for lists")
	}
	return nil
}

func runTagDump(coll *content.Collection, selected []*post.Post, field string, kind ops.FieldKind, warnings []Warning) error {
	op := &ops.Dump{Field: field, Kind: kind}

	var report func(ops.Result)
	if !isJSONOutput() {
		report = func(r ops.Result) {
			switch r.Status {
			case ops.StatusErrored:
				fmt.Println(ui.Errorf("%s: %s", ui.FilePath(r.Path), r.Reason))
			default:
				fmt.Printf("%s\n  %s\n", ui.FilePath(r.Path), r.Detail)
			}
		}
	}

	summary := ops.Run(selected, op, true, len(coll.Posts), report)
	values := op.UniqueValues()

	if isJSONOutput() {
		outputSuccessWithWarnings(map[string]interface{}{
			"field":   field,
			"kind":    kind.String(),
			"values":  values,
			"summary": summary,
		}, warnings, &Meta{Count: summary.Selected})
		return nil
	}

	fmt.Println()
	fmt.Printf("%s %s\n", ui.Header(fmt.Sprintf("%d unique values", len(values))),
		ui.Hint(fmt.Sprintf("across %d posts", summary.Selected)))
	for _, v := range values {
		fmt.Printf("  %s\n", v)
	}
	return nil
}

func printTagResult(r ops.Result) {
	prefix := ""
	if tagDryRun {
		prefix = "[dry run] "
	}
	switch r.Status {
	case ops.StatusApplied:
		fmt.Println(ui.Successf("%s%s", prefix, ui.FilePath(r.Path)))
		if r.Detail != "" {
			fmt.Printf("  %s\n", r.Detail)
		}
	case ops.StatusErrored:
		fmt.Println(ui.Errorf("%s: %s", ui.FilePath(r.Path), r.Reason))
	}
}

func printRunSummary(s *ops.Summary) {
	fmt.Println()
	line := fmt.Sprintf("%d scanned, %d selected, %d applied, %d unchanged, %d errored",
		s.Scanned, s.Selected, s.Applied, s.Unchanged, s.Errored)
	if s.Skipped > 0 {
		line += fmt.Sprintf(", %d skipped", s.Skipped)
	}
	if s.DryRun {
		line += " (dry run, nothing written)"
	}
	fmt.Println(ui.Hint(line))
}

func init() {
	addSelectionFlags(tagCmd, &tagSelection)

	tagCmd.Flags().BoolVar(&tagCategories, "categories", false, "Operate on categories instead of tags")
	tagCmd.Flags().StringVar(&tagListField, "list", "", "Operate on a custom list field (e.g. keywords)")
	tagCmd.Flags().StringVar(&tagLabelField, "label", "", "Operate on a custom single-value field (e.g. series)")

	tagCmd.Flags().StringSliceVar(&tagAdd, "add", nil, "Values to add to a list field (comma-separated)")
	tagCmd.Flags().StringSliceVar(&tagRemove, "remove", nil, "Values to remove from a list field (comma-separated)")
	tagCmd.Flags().StringVar(&tagSet, "set", "", "Value to set on a label field")
	tagCmd.Flags().BoolVar(&tagUnset, "unset", false, "Remove a label field entirely")
	tagCmd.Flags().BoolVar(&tagDump, "dump", false, "Report current field values without modifying")
	tagCmd.Flags().BoolVar(&tagDryRun, "dry-run", false, "Show what would change without writing")

	rootCmd.AddCommand(tagCmd)
}
