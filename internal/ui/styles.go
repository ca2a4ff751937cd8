package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Highlights, paths, interactive elements
// - Muted (gray): Secondary info, counts
// - No colored success/error/warning - use unicode symbols only

// defaultAccent is used until ConfigureTheme overrides it.
const defaultAccent = "#A78BFA"

var (
	// Accent style for file paths, field values, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, counts
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
)

// accentColor is the configured accent, empty when unset or disabled.
var accentColor = defaultAccent

// ConfigureTheme applies the configured accent color to the shared
// styles. Values "none", "off", and "default" disable the accent.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if accent == "" {
		return
	}
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the active accent color. The second return is
// false when the accent is disabled.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

// normalizeAccentColor validates an accent value: ANSI color codes 0
// through 255, or hex colors (#RGB expands to #RRGGBB).
func normalizeAccentColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "off", "default":
		return "", false
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return "", false
		}
		return strconv.Itoa(n), true
	}

	if strings.HasPrefix(s, "#") {
		hex := strings.ToLower(s[1:])
		for _, c := range hex {
			if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
				return "", false
			}
		}
		switch len(hex) {
		case 3:
			var b strings.Builder
			b.WriteByte('#')
			for _, c := range hex {
				b.WriteRune(c)
				b.WriteRune(c)
			}
			return b.String(), true
		case 6:
			return "#" + hex, true
		}
	}

	return "", false
}
