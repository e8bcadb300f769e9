// Package metadata defines the key/value map stored in git notes and the
// parsing of its two input formats: inline key=value text and JSON files.
package metadata

import "encoding/json"

// Map is a flat string-keyed metadata mapping. Values parsed from inline
// input are always strings; values from a JSON file keep their original
// JSON type and round-trip through serialization unchanged.
type Map map[string]any

// Merge overlays updates onto existing: every key in updates wins, keys
// present only in existing are preserved. Neither argument is mutated.
func Merge(existing, updates Map) Map {
	merged := make(Map, len(existing)+len(updates))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}
	return merged
}

// Encode serializes the map to compact JSON for storage as a note body.
// Keys are emitted in sorted order (encoding/json behavior for maps), so the
// stored artifact is stable across runs.
func (m Map) Encode() ([]byte, error) {
	return json.Marshal(map[string]any(m))
}

// ParseStored parses a note body previously written by Encode.
// Returns an error if the body is not a JSON object; callers downgrade that
// to a warning and discard the unreadable prior state.
func ParseStored(body []byte) (Map, error) {
	return decodeObject(body)
}
