// internal/common/jsonutil/jsonutil.go
package jsonutil

import (
	"encoding/json"
	"strings"
)

// The platform API is not consistent about response shapes: the same resource
// may arrive as a bare array, as {"data": [...]}, or with the same field under
// different nested key names. Everything here exists to fold those variants
// into one canonical in-memory form before any caller looks at the data.

// UnwrapObject decodes raw into a map, looking through a {"data": {...}}
// envelope when present. Malformed or empty input yields an empty map.
func UnwrapObject(raw json.RawMessage) map[string]interface{} {
	if len(raw) == 0 {
		return map[string]interface{}{}
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return map[string]interface{}{}
	}

	if inner, ok := m["data"].(map[string]interface{}); ok && len(m) <= 2 {
		return inner
	}
	return m
}

// UnwrapList decodes raw into a list of objects, accepting either a bare array
// or a {"data": [...]} envelope. Non-object entries are skipped; malformed or
// empty input yields an empty list.
func UnwrapList(raw json.RawMessage) []map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}

	var items []interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		var envelope struct {
			Data []interface{} `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil
		}
		items = envelope.Data
	}

	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

// ValueAt walks a dot-separated path ("userId.profile.firstName") through
// nested objects.
func ValueAt(m map[string]interface{}, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	current := m
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		next, ok := val.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// StringAt tries each path in order and returns the first non-empty string,
// defaulting to "".
func StringAt(m map[string]interface{}, paths ...string) string {
	for _, path := range paths {
		if val, ok := ValueAt(m, path); ok {
			if s, ok := val.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// NumberAt tries each path in order and returns the first numeric value,
// defaulting to 0. JSON numbers decode as float64; numeric strings are not
// coerced here.
func NumberAt(m map[string]interface{}, paths ...string) float64 {
	for _, path := range paths {
		if val, ok := ValueAt(m, path); ok {
			if f, ok := val.(float64); ok {
				return f
			}
		}
	}
	return 0
}

// BoolAt tries each path in order and returns the first boolean, defaulting
// to false.
func BoolAt(m map[string]interface{}, paths ...string) bool {
	for _, path := range paths {
		if val, ok := ValueAt(m, path); ok {
			if b, ok := val.(bool); ok {
				return b
			}
		}
	}
	return false
}
