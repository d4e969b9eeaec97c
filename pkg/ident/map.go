package ident

import "sort"

// entry pairs a stored value with the original casing of its key.
type entry[V any] struct {
	value V
	key   string
}

// Map is a generic map keyed by case-insensitive identifiers. Lookups with
// any casing of a key find the same entry. The original casing of the most
// recent Set is preserved and reported by Keys, which matters for error
// messages that echo the user's spelling.
type Map[V any] struct {
	entries map[string]entry[V]
}

// NewMap creates an empty Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{entries: make(map[string]entry[V])}
}

// NewMapWithCapacity creates an empty Map sized for n entries.
func NewMapWithCapacity[V any](n int) *Map[V] {
	return &Map[V]{entries: make(map[string]entry[V], n)}
}

// Get retrieves the value stored under any casing of key.
func (m *Map[V]) Get(key string) (V, bool) {
	e, ok := m.entries[Normalize(key)]
	return e.value, ok
}

// Set stores value under key, replacing any entry stored under a different
// casing of the same identifier.
func (m *Map[V]) Set(key string, value V) {
	m.entries[Normalize(key)] = entry[V]{value: value, key: key}
}

// Has reports whether any casing of key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.entries[Normalize(key)]
	return ok
}

// Delete removes the entry for key, if present.
func (m *Map[V]) Delete(key string) {
	delete(m.entries, Normalize(key))
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return len(m.entries)
}

// Keys returns the original-cased keys in normalized sort order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for norm := range m.entries {
		keys = append(keys, norm)
	}
	sort.Strings(keys)
	for i, norm := range keys {
		keys[i] = m.entries[norm].key
	}
	return keys
}

// Range calls fn for every entry with its original-cased key, in normalized
// sort order. Iteration stops early if fn returns false.
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	norms := make([]string, 0, len(m.entries))
	for norm := range m.entries {
		norms = append(norms, norm)
	}
	sort.Strings(norms)
	for _, norm := range norms {
		e := m.entries[norm]
		if !fn(e.key, e.value) {
			return
		}
	}
}
