// Package naming converts between the camelCase identifiers used by tool
// callers and the snake_case field names of the Marketing API. Conversion is
// structural: it renames map keys recursively but never touches scalar
// values or reshapes slices.
package naming

import (
	"strings"
	"unicode"
)

// ToSnake converts a camelCase key to snake_case. Keys that are already
// lowercase or underscore-separated pass through unchanged. Acronym runs
// (consecutive uppercase letters) produce one underscore per boundary, so
// round-tripping such keys through ToCamel is lossy.
func ToSnake(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamel converts a snake_case key back to camelCase. It is the inverse of
// ToSnake for keys that follow a strict camelCase convention.
func ToCamel(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	upper := false
	for _, r := range key {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MapToSnake returns a new map with every key converted by ToSnake,
// recursing into nested maps and into map elements of slices. Slice
// containers and scalar values are passed through as-is.
func MapToSnake(m map[string]any) map[string]any {
	return convertMap(m, ToSnake)
}

// MapToCamel is the reverse of MapToSnake.
func MapToCamel(m map[string]any) map[string]any {
	return convertMap(m, ToCamel)
}

func convertMap(m map[string]any, conv func(string) string) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[conv(k)] = convertValue(v, conv)
	}
	return out
}

func convertValue(v any, conv func(string) string) any {
	switch val := v.(type) {
	case map[string]any:
		return convertMap(val, conv)
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = convertValue(elem, conv)
		}
		return out
	default:
		return v
	}
}
