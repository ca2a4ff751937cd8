package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Collection errors
	ErrContentDirNotFound = "CONTENT_DIR_NOT_FOUND"
	ErrConfigInvalid      = "CONFIG_INVALID"

	// Selection errors
	ErrNoSelection  = "NO_SELECTION"
	ErrPathNotFound = "PATH_NOT_FOUND"

	// Field errors
	ErrTypeMismatch = "TYPE_MISMATCH"

	// File errors
	ErrFileReadError     = "FILE_READ_ERROR"
	ErrFileWriteError    = "FILE_WRITE_ERROR"
	ErrMalformedMetadata = "MALFORMED_FRONTMATTER"

	// Import errors
	ErrImportParseError = "IMPORT_PARSE_ERROR"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnNoFrontmatter = "NO_FRONTMATTER"
	WarnLoadFailed    = "LOAD_FAILED"
	WarnStrayHTML     = "STRAY_HTML"
)
