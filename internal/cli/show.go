package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acormier/quill/internal/frontmatter"
	"github.com/acormier/quill/internal/post"
	"github.com/acormier/quill/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Preview a post in the terminal",
	Long: `Renders a post's body as styled markdown with its metadata above it.

Examples:
  quill show content/posts/2023-06-15-release.md
  quill show content/posts/2023-06-15-release.md --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := post.Load(args[0])
		if err != nil {
			var malformed *frontmatter.MalformedError
			switch {
			case errors.As(err, &malformed):
				return handleError(ErrMalformedMetadata, err, "Fix the frontmatter block and retry")
			case errors.Is(err, frontmatter.ErrNoFrontmatter):
				return handleError(ErrMalformedMetadata, err, "Posts need a frontmatter block")
			default:
				return handleError(ErrFileReadError, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"path":     p.Path,
				"format":   p.Format.String(),
				"metadata": orderedMetadata(p),
				"body":     p.Body(),
			}, nil)
			return nil
		}

		display := ui.NewDisplayContext()

		fmt.Println(ui.AccentBold.Render(p.Title()))
		for _, key := range p.Metadata().Keys() {
			if key == post.FieldTitle {
				continue
			}
			v, _ := p.Metadata().Get(key)
			fmt.Printf("%s %s\n", ui.Muted.Render(key+":"), v.Display())
		}

		rendered, err := ui.RenderMarkdown(p.Body(), display.AvailableWidth(ui.MarkdownRenderMargin))
		if err != nil {
			// Fall back to the raw body rather than failing the preview.
			fmt.Println()
			fmt.Println(p.Body())
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

// metadataEntry is one frontmatter field in the JSON payload. A slice
// keeps the file's key order, which a JSON object would lose.
type metadataEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func orderedMetadata(p *post.Post) []metadataEntry {
	meta := p.Metadata()
	out := make([]metadataEntry, 0, meta.Len())
	for _, key := range meta.Keys() {
		v, _ := meta.Get(key)
		out = append(out, metadataEntry{Key: key, Value: v.Display()})
	}
	return out
}

func init() {
	rootCmd.AddCommand(showCmd)
}
