// Package content loads a directory of posts and selects subsets of
// them by combinable criteria.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/acormier/quill/internal/frontmatter"
	"github.com/acormier/quill/internal/post"
)

// LoadError records one file that could not join the collection.
type LoadError struct {
	Path   string
	Reason string

	// NoFrontmatter marks files skipped for having no metadata block,
	// as opposed to files with a malformed one.
	NoFrontmatter bool
}

// Collection is the set of posts under a content root, in discovery
// (directory walk) order. It is rebuilt from disk on every run; there
// is no persistent index.
type Collection struct {
	Root  string
	Posts []*post.Post

	// LoadErrors lists files excluded during loading. Load failures
	// are per-file and never abort the whole pass.
	LoadErrors []LoadError
}

// Load walks root recursively and loads every markdown file. Dot
// directories are skipped. A missing root is an error; individual file
// failures are recorded in Collection.LoadErrors.
func Load(root string) (*Collection, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("content directory not found: %s", root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path is not a directory: %s", root)
	}

	c := &Collection{Root: root}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			c.LoadErrors = append(c.LoadErrors, LoadError{Path: path, Reason: err.Error()})
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".md") {
			return nil
		}

		p, err := post.Load(path)
		if err != nil {
			c.LoadErrors = append(c.LoadErrors, loadError(path, err))
			return nil
		}
		c.Posts = append(c.Posts, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func loadError(path string, err error) LoadError {
	if errors.Is(err, frontmatter.ErrNoFrontmatter) {
		return LoadError{Path: path, Reason: err.Error(), NoFrontmatter: true}
	}
	return LoadError{Path: path, Reason: err.Error()}
}
