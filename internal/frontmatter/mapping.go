package frontmatter

// Mapping is an insertion-ordered set of named values. Key order is
// preserved across decode, mutation, and encode; Set on an existing key
// keeps its position.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the field names in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value for a field name.
func (m *Mapping) Get(name string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[name]
	return v, ok
}

// Has reports whether a field exists.
func (m *Mapping) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Set stores a value. New fields append to the key order.
func (m *Mapping) Set(name string, v Value) {
	if _, exists := m.values[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.values[name] = v
}

// Delete removes a field. Removing an absent field is a no-op.
func (m *Mapping) Delete(name string) bool {
	if m == nil {
		return false
	}
	if _, exists := m.values[name]; !exists {
		return false
	}
	delete(m.values, name)
	for i, k := range m.keys {
		if k == name {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Equal reports deep equality including key order.
func (m *Mapping) Equal(other *Mapping) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, key := range m.keys {
		if other.keys[i] != key {
			return false
		}
		a := m.values[key]
		b := other.values[key]
		if !a.Equal(b) {
			return false
		}
	}
	return true
}
