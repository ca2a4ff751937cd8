package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acormier/quill/internal/ops"
	"github.com/acormier/quill/internal/ui"
)

var (
	syncSelection selectionFlags
	syncDryRun    bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Set file modification times from frontmatter dates",
	Long: `Sets each selected post file's modification time to the date in its
frontmatter, so directory listings and static-site tooling that read
mtimes agree with the published dates. Posts without a usable date are
skipped and reported. Files already in sync are left alone.

Examples:
  quill sync --all                 # sync the whole collection
  quill sync --from 2023-01-01     # only recent posts
  quill sync --all --dry-run       # preview the changes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		coll, warnings, err := loadCollection()
		if err != nil || coll == nil {
			return err
		}
		selected, err := selectPosts(coll, &syncSelection)
		if err != nil {
			return err
		}

		var report func(ops.Result)
		if !isJSONOutput() {
			report = printSyncResult
		}
		summary := ops.Run(selected, ops.SyncTimes{}, syncDryRun, len(coll.Posts), report)

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{
				"summary": summary,
			}, warnings, &Meta{Count: summary.Selected})
			return nil
		}

		printRunSummary(&summary)
		return nil
	},
}

func printSyncResult(r ops.Result) {
	prefix := ""
	if syncDryRun {
		prefix = "[dry run] "
	}
	switch r.Status {
	case ops.StatusApplied:
		fmt.Println(ui.Successf("%s%s", prefix, ui.FilePath(r.Path)))
		if r.Detail != "" {
			fmt.Printf("  %s\n", r.Detail)
		}
	case ops.StatusSkipped:
		fmt.Println(ui.Warningf("%s: %s", ui.FilePath(r.Path), r.Reason))
	case ops.StatusErrored:
		fmt.Println(ui.Errorf("%s: %s", ui.FilePath(r.Path), r.Reason))
	}
}

func init() {
	addSelectionFlags(syncCmd, &syncSelection)
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Show what would change without touching files")

	rootCmd.AddCommand(syncCmd)
}
