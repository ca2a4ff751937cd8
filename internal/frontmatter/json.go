package frontmatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/acormier/quill/internal/dates"
)

// decodeJSON parses a JSON object with a token stream so key order is
// recorded. JSON has no native date type, so ISO-8601-shaped strings are
// converted back to temporal values, mirroring what encodeJSON emits.
func decodeJSON(block string) (*Mapping, error) {
	dec := json.NewDecoder(strings.NewReader(block))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("frontmatter must be a JSON object")
	}

	return jsonObject(dec)
}

func jsonObject(dec *json.Decoder) (*Mapping, error) {
	m := NewMapping()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key token %v", keyTok)
		}
		value, err := jsonValue(dec)
		if err != nil {
			return nil, err
		}
		m.Set(key, value)
	}
	if _, err := dec.Token(); err != nil { // consume closing brace
		return nil, err
	}
	return m, nil
}

func jsonValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			nested, err := jsonObject(dec)
			if err != nil {
				return Value{}, err
			}
			return Map(nested), nil
		case '[':
			var items []Value
			for dec.More() {
				item, err := jsonValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // consume closing bracket
				return Value{}, err
			}
			return List(items), nil
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %v", t)
		}
	case string:
		if v, ok := jsonTimeString(t); ok {
			return v, nil
		}
		return String(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

// jsonTimeString recognizes the exact shapes encodeJSON emits for
// temporal values, so decode(encode(v)) yields the same instant.
func jsonTimeString(s string) (Value, bool) {
	if !looksLikeISODate(s) {
		return Value{}, false
	}
	parsed, err := dates.ParseAny(s)
	if err != nil {
		return Value{}, false
	}
	if parsed.DateOnly {
		return Date(parsed.Time), true
	}
	return Datetime(parsed.Time, parsed.HasZone), true
}

func looksLikeISODate(s string) bool {
	if len(s) < 10 {
		return false
	}
	for i, r := range s[:10] {
		if i == 4 || i == 7 {
			if r != '-' {
				return false
			}
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) == 10 || s[10] == 'T' || s[10] == ' '
}

// encodeJSON writes the mapping as a 2-space-indented JSON object with
// fields in recorded order.
func encodeJSON(m *Mapping) (string, error) {
	var b strings.Builder
	if err := writeJSONMapping(&b, m, ""); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeJSONMapping(b *strings.Builder, m *Mapping, indent string) error {
	if m.Len() == 0 {
		b.WriteString("{}")
		return nil
	}
	inner := indent + "  "
	b.WriteString("{\n")
	keys := m.Keys()
	for i, key := range keys {
		value, _ := m.Get(key)
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return err
		}
		b.WriteString(inner)
		b.Write(encodedKey)
		b.WriteString(": ")
		if err := writeJSONValue(b, value, inner); err != nil {
			return err
		}
		if i < len(keys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString("}")
	return nil
}

func writeJSONValue(b *strings.Builder, v Value, indent string) error {
	switch v.Kind() {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		val, _ := v.AsBool()
		fmt.Fprintf(b, "%t", val)
	case KindNumber:
		f, _ := v.AsNumber()
		b.WriteString(formatNumber(f))
	case KindString:
		s, _ := v.AsString()
		encoded, err := json.Marshal(s)
		if err != nil {
			return err
		}
		b.Write(encoded)
	case KindTime:
		encoded, err := json.Marshal(v.timeString())
		if err != nil {
			return err
		}
		b.Write(encoded)
	case KindList:
		items, _ := v.AsList()
		if len(items) == 0 {
			b.WriteString("[]")
			return nil
		}
		inner := indent + "  "
		b.WriteString("[\n")
		for i, item := range items {
			b.WriteString(inner)
			if err := writeJSONValue(b, item, inner); err != nil {
				return err
			}
			if i < len(items)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString(indent)
		b.WriteString("]")
	case KindMap:
		nested, _ := v.AsMap()
		return writeJSONMapping(b, nested, indent)
	}
	return nil
}
