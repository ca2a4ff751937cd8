package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/acormier/quill/internal/ui"
	"github.com/acormier/quill/internal/wordpress"
)

var (
	importOutputDir string
	importDryRun    bool
	importLimit     int
)

var importCmd = &cobra.Command{
	Use:   "import <wordpress-export.xml>",
	Short: "Convert a WordPress export to Hugo posts",
	Long: `Converts a WordPress WXR export file into Hugo markdown posts.

Published posts are converted from HTML to markdown with frontmatter
carrying the title, date, permalink, categories, and tags. Drafts,
pages, and attachments are skipped. Posts whose converted body still
contains HTML are flagged for manual review. Each written file's
modification time is set to its post date.

Examples:
  quill import export.xml
  quill import export.xml --output-dir content/posts
  quill import export.xml --limit 5 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return handleError(ErrFileReadError, err, "Check the export file path")
		}
		defer f.Close()

		imp := &wordpress.Importer{
			OutputDir: importOutputDir,
			Limit:     importLimit,
			DryRun:    importDryRun,
		}

		var report func(wordpress.Result)
		if !isJSONOutput() {
			report = printImportResult
		}
		summary, err := imp.Run(f, report)
		if err != nil {
			return handleError(ErrImportParseError, err, "Is this a WordPress WXR export?")
		}

		if isJSONOutput() {
			warnings := importWarnings(summary)
			outputSuccessWithWarnings(map[string]interface{}{
				"output_dir": importOutputDir,
				"summary":    summary,
			}, warnings, &Meta{Count: summary.Converted})
			return nil
		}

		fmt.Println()
		line := fmt.Sprintf("%d items, %d publishable, %d converted, %d errored",
			summary.TotalItems, summary.Exportable, summary.Converted, summary.Errored)
		if summary.NeedsReview > 0 {
			line += fmt.Sprintf(", %d need manual review", summary.NeedsReview)
		}
		if summary.DryRun {
			line += " (dry run, nothing written)"
		}
		fmt.Println(ui.Hint(line))
		return nil
	},
}

func printImportResult(r wordpress.Result) {
	prefix := ""
	if importDryRun {
		prefix = "[dry run] "
	}
	switch {
	case r.Err != "":
		fmt.Println(ui.Errorf("%s: %s", r.Title, r.Err))
	default:
		fmt.Println(ui.Successf("%s%s -> %s", prefix, r.Title, ui.FilePath(r.Path)))
		if len(r.Stray) > 0 {
			fmt.Printf("  %s\n", ui.Warningf("contains HTML tags: %s", strings.Join(r.Stray, ", ")))
		}
	}
}

func importWarnings(summary *wordpress.Summary) []Warning {
	var warnings []Warning
	for _, r := range summary.Results {
		if len(r.Stray) > 0 {
			warnings = append(warnings, Warning{
				Code:    WarnStrayHTML,
				Message: fmt.Sprintf("contains HTML tags: %s", strings.Join(r.Stray, ", ")),
				Path:    r.Path,
			})
		}
	}
	return warnings
}

func init() {
	importCmd.Flags().StringVarP(&importOutputDir, "output-dir", "o", "wordpress-export", "Output directory for converted posts")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Convert and report without writing files")
	importCmd.Flags().IntVar(&importLimit, "limit", 0, "Limit the number of posts to convert (0 = no limit)")

	rootCmd.AddCommand(importCmd)
}
