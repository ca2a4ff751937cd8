package ui

import "fmt"

// Status symbols. Color never carries meaning on its own; the symbol
// does, so output stays readable with the accent disabled.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
)

// Successf formats a result line with the success symbol.
func Successf(format string, args ...interface{}) string {
	return SymbolSuccess + " " + fmt.Sprintf(format, args...)
}

// Errorf formats a result line with the error symbol.
func Errorf(format string, args ...interface{}) string {
	return SymbolError + " " + fmt.Sprintf(format, args...)
}

// Warningf formats a result line with the warning symbol.
func Warningf(format string, args ...interface{}) string {
	return SymbolWarning + " " + fmt.Sprintf(format, args...)
}

// Header returns a styled section header.
func Header(msg string) string {
	return Bold.Render(msg)
}

// FilePath returns an accent-styled file path.
func FilePath(path string) string {
	return Accent.Render(path)
}

// Hint returns muted secondary text.
func Hint(msg string) string {
	return Muted.Render(msg)
}
