package category

import "strings"

// CategoryCode is the transient form used while unpacking composite codes
// like `prefix:code1+code2`.
type CategoryCode struct {
	Prefix string
	Code   string
}

func (c CategoryCode) String() string {
	return c.Prefix + ":" + c.Code
}

// Unpack splits a raw taxonomy code into one CategoryCode per component.
// Everything before the first colon is the prefix when present and non-empty
// after trimming, otherwise defaultPrefix applies. What follows is split on
// `+`, each piece trimmed, empty pieces dropped.
func Unpack(code, defaultPrefix string) []CategoryCode {
	prefix := defaultPrefix
	rest := code
	if idx := strings.Index(code, ":"); idx >= 0 {
		if p := strings.TrimSpace(code[:idx]); p != "" {
			prefix = p
		}
		rest = code[idx+1:]
	}

	var out []CategoryCode
	for _, piece := range strings.Split(rest, "+") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		out = append(out, CategoryCode{Prefix: prefix, Code: piece})
	}
	return out
}
