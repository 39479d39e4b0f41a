package export

import (
	"strconv"
	"strings"
)

// Value resolves a slash-separated field path against a decoded JSON
// object and renders it as a cell string. Missing paths and nested
// objects render empty, lists are joined with "|".
func Value(resource map[string]any, path string) string {
	var elem any = resource
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		m, ok := elem.(map[string]any)
		if !ok {
			return ""
		}
		elem = m[part]
	}
	return render(elem)
}

func render(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = render(item)
		}
		return strings.Join(parts, "|")
	default:
		return ""
	}
}
