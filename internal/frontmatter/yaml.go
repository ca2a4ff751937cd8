package frontmatter

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// YAML scalar tags we resolve into typed values.
const (
	yamlTagNull      = "!!null"
	yamlTagBool      = "!!bool"
	yamlTagInt       = "!!int"
	yamlTagFloat     = "!!float"
	yamlTagTimestamp = "!!timestamp"
	yamlTagString    = "!!str"
)

func decodeYAML(block string) (*Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, err
	}

	// Empty documents (whitespace or comments only) still count as
	// frontmatter; they decode to an empty mapping.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewMapping(), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: frontmatter must be a mapping", root.Line)
	}
	return mappingFromYAMLNode(root)
}

func mappingFromYAMLNode(node *yaml.Node) (*Mapping, error) {
	m := NewMapping()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		value, err := valueFromYAMLNode(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		m.Set(keyNode.Value, value)
	}
	return m, nil
}

func valueFromYAMLNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return valueFromYAMLNode(node.Alias)

	case yaml.MappingNode:
		nested, err := mappingFromYAMLNode(node)
		if err != nil {
			return Value{}, err
		}
		return Map(nested), nil

	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := valueFromYAMLNode(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return List(items), nil

	case yaml.ScalarNode:
		return valueFromYAMLScalar(node)

	default:
		return Null(), nil
	}
}

func valueFromYAMLScalar(node *yaml.Node) (Value, error) {
	switch node.Tag {
	case yamlTagNull:
		return Null(), nil
	case yamlTagBool:
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case yamlTagInt, yamlTagFloat:
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case yamlTagTimestamp:
		var t time.Time
		if err := node.Decode(&t); err != nil {
			return Value{}, err
		}
		return timeValue(t, node.Value), nil
	default:
		return String(node.Value), nil
	}
}

// timeValue classifies a parsed timestamp using its source text: a bare
// date stays date-only, and an offset suffix marks the value zone-aware.
// Timestamps with no offset are wall-clock values in local time.
func timeValue(t time.Time, source string) Value {
	hasZone := hasZoneSuffix(source)
	if !hasZone {
		t = time.Date(t.Year(), t.Month(), t.Day(),
			t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 && len(source) == 10 {
		return Date(t)
	}
	return Datetime(t, hasZone)
}

func hasZoneSuffix(s string) bool {
	if len(s) == 0 {
		return false
	}
	if s[len(s)-1] == 'Z' || s[len(s)-1] == 'z' {
		return true
	}
	// An offset looks like +07:00 or -05:30 at the end.
	if len(s) >= 6 {
		tail := s[len(s)-6:]
		if (tail[0] == '+' || tail[0] == '-') && tail[3] == ':' {
			return true
		}
	}
	return false
}

func encodeYAML(m *Mapping) (string, error) {
	if m.Len() == 0 {
		return "", nil
	}
	root := yamlNodeFromMapping(m)
	out, err := yaml.Marshal(root)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func yamlNodeFromMapping(m *Mapping) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: yamlTagString, Value: key},
			yamlNodeFromValue(value),
		)
	}
	return node
}

func yamlNodeFromValue(v Value) *yaml.Node {
	switch v.Kind() {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlTagNull, Value: "null"}
	case KindBool:
		b, _ := v.AsBool()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlTagBool, Value: fmt.Sprintf("%t", b)}
	case KindNumber:
		f, _ := v.AsNumber()
		tag := yamlTagFloat
		if isWholeNumber(f) {
			tag = yamlTagInt
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: formatNumber(f)}
	case KindTime:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlTagTimestamp, Value: v.timeString()}
	case KindList:
		items, _ := v.AsList()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range items {
			node.Content = append(node.Content, yamlNodeFromValue(item))
		}
		return node
	case KindMap:
		nested, _ := v.AsMap()
		return yamlNodeFromMapping(nested)
	default:
		s, _ := v.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlTagString, Value: s}
	}
}
