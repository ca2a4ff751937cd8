package frontmatter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

func decodeTOML(block string) (*Mapping, error) {
	var data map[string]interface{}
	md, err := toml.Decode(block, &data)
	if err != nil {
		return nil, err
	}

	// MetaData.Keys lists every defined key as a dotted path, in
	// source order. The index keeps that order available for nested
	// tables, which the decoder hands back as plain maps.
	order := newTOMLKeyOrder(md.Keys())

	m := NewMapping()
	for _, name := range order.childrenOf(nil) {
		if m.Has(name) {
			continue
		}
		m.Set(name, valueFromTOML(data[name], order, []string{name}))
	}
	return m, nil
}

// tomlKeyOrder maps a dotted table path to its child keys in source
// order.
type tomlKeyOrder map[string][]string

func newTOMLKeyOrder(keys []toml.Key) tomlKeyOrder {
	order := make(tomlKeyOrder)
	seen := make(map[string]bool)
	for _, key := range keys {
		if len(key) == 0 {
			continue
		}
		full := strings.Join(key, "\x00")
		if seen[full] {
			continue
		}
		seen[full] = true
		parent := strings.Join(key[:len(key)-1], "\x00")
		order[parent] = append(order[parent], key[len(key)-1])
	}
	return order
}

func (o tomlKeyOrder) childrenOf(path []string) []string {
	return o[strings.Join(path, "\x00")]
}

func valueFromTOML(raw interface{}, order tomlKeyOrder, path []string) Value {
	switch v := raw.(type) {
	case string:
		return String(v)
	case bool:
		return Bool(v)
	case int64:
		return Number(float64(v))
	case float64:
		return Number(v)
	case time.Time:
		return timeValueFromTOML(v)
	case []interface{}:
		items := make([]Value, 0, len(v))
		for _, item := range v {
			items = append(items, valueFromTOML(item, order, path))
		}
		return List(items)
	case []map[string]interface{}:
		// Array-of-tables elements share one key path.
		items := make([]Value, 0, len(v))
		for _, item := range v {
			items = append(items, Map(mappingFromTOMLTable(item, order, path)))
		}
		return List(items)
	case map[string]interface{}:
		return Map(mappingFromTOMLTable(v, order, path))
	case nil:
		return Null()
	default:
		return String(fmt.Sprintf("%v", v))
	}
}

// mappingFromTOMLTable converts a nested table, preserving the source
// key order recorded in the order index. Keys the index does not cover
// fall back to sorted order for a stable result.
func mappingFromTOMLTable(table map[string]interface{}, order tomlKeyOrder, path []string) *Mapping {
	m := NewMapping()
	for _, key := range order.childrenOf(path) {
		raw, ok := table[key]
		if !ok || m.Has(key) {
			continue
		}
		m.Set(key, valueFromTOML(raw, order, childPath(path, key)))
	}

	var rest []string
	for key := range table {
		if !m.Has(key) {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		m.Set(key, valueFromTOML(table[key], order, childPath(path, key)))
	}
	return m
}

func childPath(path []string, key string) []string {
	out := make([]string, 0, len(path)+1)
	out = append(out, path...)
	return append(out, key)
}

func timeValueFromTOML(t time.Time) Value {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return Date(t)
	}
	// The decoder parses local datetimes in time.Local; anything else
	// carried an explicit offset.
	return Datetime(t, t.Location() != time.Local)
}

// encodeTOML writes keys in recorded order at every nesting level.
// TOML requires a table's bare keys before its sub-table headers, so
// map-valued fields move to the end of their block.
func encodeTOML(m *Mapping) (string, error) {
	var b strings.Builder
	if err := writeTOMLTableBody(&b, nil, m); err != nil {
		return "", err
	}
	return b.String(), nil
}

// writeTOMLTableBody writes one table's key/value pairs, then its
// sub-tables as [path] / [[path]] sections. Table sections are written
// by hand because the library encoder sorts map keys.
func writeTOMLTableBody(b *strings.Builder, path []string, m *Mapping) error {
	var tables []string
	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		if isTOMLTable(value) {
			tables = append(tables, key)
			continue
		}
		if err := encodeTOMLEntry(b, key, value); err != nil {
			return err
		}
	}

	for _, key := range tables {
		value, _ := m.Get(key)
		sub := childPath(path, key)
		if nested, ok := value.AsMap(); ok {
			fmt.Fprintf(b, "[%s]\n", tomlPathKey(sub))
			if err := writeTOMLTableBody(b, sub, nested); err != nil {
				return err
			}
			continue
		}
		items, _ := value.AsList()
		for _, item := range items {
			nested, _ := item.AsMap()
			fmt.Fprintf(b, "[[%s]]\n", tomlPathKey(sub))
			if err := writeTOMLTableBody(b, sub, nested); err != nil {
				return err
			}
		}
	}
	return nil
}

func tomlPathKey(path []string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = tomlKey(p)
	}
	return strings.Join(parts, ".")
}

// isTOMLTable reports values that serialize as [key] or [[key]] sections.
func isTOMLTable(v Value) bool {
	if v.Kind() == KindMap {
		return true
	}
	items, ok := v.AsList()
	if !ok || len(items) == 0 {
		return false
	}
	for _, item := range items {
		if item.Kind() != KindMap {
			return false
		}
	}
	return true
}

func encodeTOMLEntry(b *strings.Builder, key string, value Value) error {
	// Temporal values carry format detail (date-only, naive) the
	// encoder cannot express from a time.Time, so they are written
	// as datetime literals directly.
	if value.Kind() == KindTime {
		fmt.Fprintf(b, "%s = %s\n", tomlKey(key), value.timeString())
		return nil
	}
	if value.Kind() == KindNull {
		// TOML has no null; an absent value is simply not written.
		return nil
	}

	var chunk strings.Builder
	enc := toml.NewEncoder(&chunk)
	enc.Indent = ""
	if err := enc.Encode(map[string]interface{}{key: tomlValue(value)}); err != nil {
		return fmt.Errorf("encode field %q: %w", key, err)
	}
	b.WriteString(strings.TrimLeft(chunk.String(), "\n"))
	if !strings.HasSuffix(chunk.String(), "\n") {
		b.WriteString("\n")
	}
	return nil
}

func tomlValue(v Value) interface{} {
	switch v.Kind() {
	case KindString:
		s, _ := v.AsString()
		return s
	case KindBool:
		b, _ := v.AsBool()
		return b
	case KindNumber:
		f, _ := v.AsNumber()
		if isWholeNumber(f) {
			return int64(f)
		}
		return f
	case KindTime:
		t, _ := v.AsTime()
		return t
	case KindList:
		items, _ := v.AsList()
		out := make([]interface{}, 0, len(items))
		for _, item := range items {
			out = append(out, tomlValue(item))
		}
		return out
	case KindMap:
		nested, _ := v.AsMap()
		out := make(map[string]interface{}, nested.Len())
		for _, key := range nested.Keys() {
			item, _ := nested.Get(key)
			out[key] = tomlValue(item)
		}
		return out
	default:
		return ""
	}
}

var bareTOMLKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func tomlKey(key string) string {
	if bareTOMLKey.MatchString(key) {
		return key
	}
	return fmt.Sprintf("%q", key)
}
