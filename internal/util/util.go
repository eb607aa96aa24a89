package util

// FirstNonEmpty returns the first non-empty string in values.
func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// CloneStrings returns a copy of input, preserving nil.
func CloneStrings(input []string) []string {
	if input == nil {
		return nil
	}
	out := make([]string, len(input))
	copy(out, input)
	return out
}

// CloneAnyMap returns a deep copy of input, preserving nil.
// Nested maps and slices are copied recursively so callers never share
// mutable state with the source.
func CloneAnyMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = CloneValue(value)
	}
	return out
}

// CloneValue deep copies JSON-like values (maps, slices, scalars).
// Unsupported reference types are returned as-is.
func CloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return CloneAnyMap(typed)
	case []any:
		if typed == nil {
			return typed
		}
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = CloneValue(item)
		}
		return out
	case []string:
		return CloneStrings(typed)
	case map[string]string:
		if typed == nil {
			return typed
		}
		out := make(map[string]string, len(typed))
		for k, v := range typed {
			out[k] = v
		}
		return out
	default:
		return value
	}
}
