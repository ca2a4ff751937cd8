package frontmatter

import (
	"errors"
	"fmt"
)

// ErrNoFrontmatter reports a file with no recognized metadata block at
// its start.
var ErrNoFrontmatter = errors.New("no frontmatter block")

// MalformedError reports a frontmatter block that is present but fails
// to parse. The wrapped error carries the underlying parser's position
// information (line for YAML/TOML, byte offset for JSON).
type MalformedError struct {
	Format Format
	Err    error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s frontmatter: %v", e.Format, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }
