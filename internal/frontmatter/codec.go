// Package frontmatter detects, decodes, and encodes the metadata block
// at the top of a post file. Three formats are supported: YAML fenced by
// ---, TOML fenced by +++, and a bare JSON object.
//
// The codec is pure: it never touches the filesystem. Decoded mappings
// preserve key order, and encoding writes fields back in that order.
package frontmatter

import (
	"strings"
)

// Format identifies the serialization format of a frontmatter block.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
	FormatJSON
)

// String returns the conventional format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Fence returns the delimiter line for fenced formats, or "" for JSON.
func (f Format) Fence() string {
	switch f {
	case FormatYAML:
		return "---"
	case FormatTOML:
		return "+++"
	default:
		return ""
	}
}

// datesNative reports whether the format has first-class date values.
// Formats without them serialize times as ISO-8601 strings and parse
// them back symmetrically.
func (f Format) datesNative() bool {
	return f != FormatJSON
}

// Decode splits raw file content into its detected format, metadata
// mapping, and verbatim body text.
//
// Returns ErrNoFrontmatter when the file does not open with a recognized
// delimiter, and *MalformedError when a block is present but unparsable.
func Decode(raw []byte) (Format, *Mapping, string, error) {
	lines := strings.Split(string(raw), "\n")
	if len(lines) == 0 {
		return 0, nil, "", ErrNoFrontmatter
	}

	first := strings.TrimSpace(lines[0])
	switch {
	case first == "---":
		return decodeFenced(FormatYAML, lines)
	case first == "+++":
		return decodeFenced(FormatTOML, lines)
	case strings.HasPrefix(first, "{"):
		return decodeJSONBlock(lines)
	default:
		return 0, nil, "", ErrNoFrontmatter
	}
}

func decodeFenced(format Format, lines []string) (Format, *Mapping, string, error) {
	fence := format.Fence()
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == fence {
			end = i
			break
		}
	}
	if end == -1 {
		return format, nil, "", &MalformedError{Format: format, Err: errUnterminated(fence)}
	}

	block := strings.Join(lines[1:end], "\n")
	body := strings.Join(lines[end+1:], "\n")

	var (
		m   *Mapping
		err error
	)
	switch format {
	case FormatYAML:
		m, err = decodeYAML(block)
	case FormatTOML:
		m, err = decodeTOML(block)
	}
	if err != nil {
		return format, nil, "", &MalformedError{Format: format, Err: err}
	}
	return format, m, body, nil
}

func decodeJSONBlock(lines []string) (Format, *Mapping, string, error) {
	// The block ends at the first line holding only the closing brace.
	end := -1
	if strings.TrimSpace(lines[0]) == "{}" {
		end = 0
	}
	for i := 1; end == -1 && i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\r") == "}" {
			end = i
		}
	}
	if end == -1 {
		return FormatJSON, nil, "", &MalformedError{Format: FormatJSON, Err: errUnterminated("}")}
	}

	block := strings.Join(lines[:end+1], "\n")
	body := strings.Join(lines[end+1:], "\n")

	m, err := decodeJSON(block)
	if err != nil {
		return FormatJSON, nil, "", &MalformedError{Format: FormatJSON, Err: err}
	}
	return FormatJSON, m, body, nil
}

// Encode serializes a metadata mapping and body back to file content in
// the given format.
func Encode(format Format, m *Mapping, body string) ([]byte, error) {
	var b strings.Builder
	switch format {
	case FormatYAML:
		block, err := encodeYAML(m)
		if err != nil {
			return nil, err
		}
		b.WriteString("---\n")
		b.WriteString(block)
		b.WriteString("---\n")
	case FormatTOML:
		block, err := encodeTOML(m)
		if err != nil {
			return nil, err
		}
		b.WriteString("+++\n")
		b.WriteString(block)
		b.WriteString("+++\n")
	case FormatJSON:
		block, err := encodeJSON(m)
		if err != nil {
			return nil, err
		}
		b.WriteString(block)
		b.WriteString("\n")
	}
	b.WriteString(body)
	return []byte(b.String()), nil
}

type unterminatedError struct {
	closer string
}

func errUnterminated(closer string) error {
	return &unterminatedError{closer: closer}
}

func (e *unterminatedError) Error() string {
	return "unterminated block: missing closing " + e.closer
}
