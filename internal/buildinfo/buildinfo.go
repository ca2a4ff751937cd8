// Package buildinfo carries version metadata for release binaries.
package buildinfo

// These values are injected via ldflags at release time. They default
// to empty for local/dev builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
