package layers

import "fmt"

// #region copy-facts

// CopyFacts deep-copies a fact map. Nested maps and slices are copied so the
// result shares no mutable state with the input. Scalars are copied by value.
func CopyFacts(facts map[string]any) map[string]any {
	if facts == nil {
		return nil
	}
	out := make(map[string]any, len(facts))
	for k, v := range facts {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CopyFacts(t)
	case map[any]any:
		// yaml.v2 decodes nested mappings with interface keys.
		return normalizeMap(t)
	case map[string]string:
		m := make(map[string]string, len(t))
		for k, s := range t {
			m[k] = s
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = copyValue(e)
		}
		return s
	case []string:
		return append([]string(nil), t...)
	case []int:
		return append([]int(nil), t...)
	case []float64:
		return append([]float64(nil), t...)
	default:
		return v
	}
}

// Normalize converts yaml-style map[any]any values into map[string]any
// throughout facts, copying as it goes.
func Normalize(facts map[string]any) map[string]any {
	return CopyFacts(facts)
}

func normalizeMap(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[fmt.Sprint(k)] = copyValue(v)
	}
	return out
}

// #endregion copy-facts
