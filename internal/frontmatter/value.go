package frontmatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/acormier/quill/internal/dates"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindBool
	KindNumber
	KindTime
	KindList
	KindMap
)

// String returns a human-readable kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindTime:
		return "datetime"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a single frontmatter value: a tagged union over the shapes the
// supported formats can express. The zero Value is null.
type Value struct {
	kind     Kind
	str      string
	num      float64
	boolean  bool
	t        time.Time
	dateOnly bool
	hasZone  bool
	list     []Value
	mapping  *Mapping
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Date returns a date-only value (no time-of-day component).
func Date(t time.Time) Value {
	return Value{kind: KindTime, t: t, dateOnly: true}
}

// Datetime returns a datetime value. hasZone records whether the source
// carried an explicit UTC offset, which controls how it serializes.
func Datetime(t time.Time, hasZone bool) Value {
	return Value{kind: KindTime, t: t, hasZone: hasZone}
}

// List returns a sequence value.
func List(items []Value) Value { return Value{kind: KindList, list: items} }

// StringList returns a sequence of string values.
func StringList(items []string) Value {
	list := make([]Value, len(items))
	for i, s := range items {
		list[i] = String(s)
	}
	return List(list)
}

// Map returns a nested mapping value.
func Map(m *Mapping) Value { return Value{kind: KindMap, mapping: m} }

// Kind returns the variant this value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string value, if this is a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsBool returns the boolean value, if this is a bool.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsNumber returns the numeric value, if this is a number.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsTime returns the temporal value, if this is a date or datetime.
func (v Value) AsTime() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// DateOnly reports whether a temporal value carries no time-of-day.
func (v Value) DateOnly() bool { return v.kind == KindTime && v.dateOnly }

// AsList returns the sequence items, if this is a list.
func (v Value) AsList() ([]Value, bool) {
	return v.list, v.kind == KindList
}

// AsMap returns the nested mapping, if this is a map.
func (v Value) AsMap() (*Mapping, bool) {
	return v.mapping, v.kind == KindMap
}

// AsStringSlice returns the list items as strings. It fails if the value
// is not a list or any item is not a string.
func (v Value) AsStringSlice() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	out := make([]string, 0, len(v.list))
	for _, item := range v.list {
		s, ok := item.AsString()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// Display returns a stringified view of the value for reporting and
// text matching. It is not a serialization format.
func (v Value) Display() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindNumber:
		return formatNumber(v.num)
	case KindTime:
		return v.timeString()
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.Display()
		}
		return strings.Join(parts, ", ")
	case KindMap:
		var parts []string
		for _, key := range v.mapping.Keys() {
			item, _ := v.mapping.Get(key)
			parts = append(parts, fmt.Sprintf("%s: %s", key, item.Display()))
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// timeString formats a temporal value in its canonical text form:
// bare date, naive datetime, or RFC3339 when an offset is known.
func (v Value) timeString() string {
	switch {
	case v.dateOnly:
		return v.t.Format(dates.DateLayout)
	case v.hasZone:
		return v.t.Format(time.RFC3339)
	default:
		return v.t.Format(dates.DatetimeSecondsLayout)
	}
}

// Equal reports deep equality. Temporal values compare by instant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber:
		return v.num == other.num
	case KindTime:
		return v.t.Equal(other.t) && v.dateOnly == other.dateOnly
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.mapping.Equal(other.mapping)
	default:
		return false
	}
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func isWholeNumber(f float64) bool {
	return f == math.Trunc(f) && math.Abs(f) < 1e15
}
