// Package dates provides canonical date/datetime parsing helpers.
//
// This package exists to avoid duplicating date parsing logic across:
// - frontmatter decoding (string-valued date fields)
// - CLI date range arguments
// - mtime synchronization
//
// Timezone policy: values without an explicit offset are interpreted in
// the local timezone. Values with an offset keep it.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Canonical layouts.
const (
	DateLayout            = "2006-01-02"
	DatetimeLayout        = "2006-01-02T15:04"
	DatetimeSecondsLayout = "2006-01-02T15:04:05"
	DatetimeSpaceLayout   = "2006-01-02 15:04:05"
)

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Parsed is the result of parsing a date or datetime string.
type Parsed struct {
	Time time.Time

	// DateOnly is true when the input carried no time-of-day component.
	DateOnly bool

	// HasZone is true when the input carried an explicit UTC offset.
	HasZone bool
}

// IsValidDate checks if a string is a valid YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date in the local timezone.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// ParseAny parses a date or datetime string in any accepted format.
//
// Accepted formats:
// - YYYY-MM-DD
// - RFC3339 (e.g. 2025-01-01T10:30:00Z, 2025-06-15T14:00:00+05:00)
// - YYYY-MM-DDTHH:MM and YYYY-MM-DDTHH:MM:SS
// - YYYY-MM-DD HH:MM:SS
func ParseAny(s string) (Parsed, error) {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `'"`))
	if s == "" {
		return Parsed{}, fmt.Errorf("invalid datetime: empty")
	}

	if IsValidDate(s) {
		t, err := time.ParseInLocation(DateLayout, s, time.Local)
		if err != nil {
			return Parsed{}, err
		}
		return Parsed{Time: t, DateOnly: true}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Parsed{Time: t, HasZone: true}, nil
	}

	naive := []string{
		DatetimeSecondsLayout,
		DatetimeLayout,
		DatetimeSpaceLayout,
	}
	for _, layout := range naive {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Parsed{Time: t}, nil
		}
	}

	return Parsed{}, fmt.Errorf("invalid datetime: %q", s)
}
