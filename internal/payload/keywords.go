package payload

import (
	"fmt"
	"strings"
)

// NormalizeKeywords coerces the keywords field into a clean list. Feeds send
// either a `+`-joined string or an array; either way the result is trimmed,
// free of empty entries, and deduplicated preserving first-seen order.
// A nil input yields an empty list.
func NormalizeKeywords(input any) ([]string, error) {
	var parts []string

	switch v := input.(type) {
	case nil:
	case string:
		parts = strings.Split(v, "+")
	case []string:
		parts = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: keywords entry must be a string, got %T", ErrValidation, item)
			}
			parts = append(parts, s)
		}
	default:
		return nil, fmt.Errorf("%w: keywords must be a string or a list, got %T", ErrValidation, input)
	}

	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out, nil
}
