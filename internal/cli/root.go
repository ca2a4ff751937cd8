// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/acormier/quill/internal/config"
	"github.com/acormier/quill/internal/ui"
)

// defaultContentDir is used when neither the flag nor the config file
// names a content directory.
const defaultContentDir = "content/posts"

var (
	// Global flags
	contentDirFlag string
	configPath     string

	// Resolved values
	resolvedContentDir string
	cfg                *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "quill - a toolkit for managing Hugo content",
	Long: `Quill manages the frontmatter of a Hugo site's markdown posts:
bulk tag and category edits, file timestamps synced to post dates,
and WordPress export conversion. Posts stay plain markdown on disk;
untouched files are written back byte for byte.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that never touch the collection skip resolution.
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		// Content dir: flag > config file > default.
		switch {
		case contentDirFlag != "":
			resolvedContentDir = contentDirFlag
		case cfg.ContentDir != "":
			resolvedContentDir = cfg.ContentDir
		default:
			resolvedContentDir = defaultContentDir
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&contentDirFlag, "content-dir", "c", "", "Content directory containing markdown posts")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getContentDir returns the resolved content directory.
func getContentDir() string {
	return resolvedContentDir
}

func loadGlobalConfig() (*config.Config, error) {
	var (
		loaded *config.Config
		err    error
	)
	if strings.TrimSpace(configPath) != "" {
		loaded, err = config.LoadFrom(configPath)
	} else {
		loaded, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		loaded = &config.Config{}
	}
	return loaded, nil
}
