// Package kvstore implements a flat string-to-string store that is loaded,
// mutated, and written back in full on every command.
package kvstore

import "sort"

// Mapping is the in-memory key-value mapping.
type Mapping map[string]string

// Keys returns the keys in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RemoveKey removes key and reports whether it was present.
func (m Mapping) RemoveKey(key string) bool {
	if _, ok := m[key]; !ok {
		return false
	}
	delete(m, key)
	return true
}

// KeyForValue returns the first key, in sorted order, whose value equals value.
func (m Mapping) KeyForValue(value string) (string, bool) {
	for _, k := range m.Keys() {
		if m[k] == value {
			return k, true
		}
	}
	return "", false
}
