package payload

import (
	"regexp"
	"strconv"
	"strings"
)

var unicodeEscape = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`)

// escapeReplacer rewrites backslash escape sequences to their literal
// character in a single left-to-right pass, so `\\n` in the input stays a
// literal backslash followed by `n` rather than collapsing twice.
var escapeReplacer = strings.NewReplacer(
	`\\`, `\`,
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
	`\"`, `"`,
	`\'`, "'",
)

// newlineRun matches a run of one or more newlines, optionally interspersed
// with other whitespace.
var newlineRun = regexp.MustCompile(`(?:\n\s*)+`)

// DecodeBodyText un-escapes unicode and backslash sequences left over from
// double-encoded feed bodies, then collapses every newline run into a single
// literal `<br />` marker so the HTML cleaner can treat it as a paragraph
// boundary.
func DecodeBodyText(raw string) string {
	if raw == "" {
		return raw
	}

	decoded := unicodeEscape.ReplaceAllStringFunc(raw, func(esc string) string {
		code, err := strconv.ParseUint(esc[2:], 16, 32)
		if err != nil {
			return esc
		}
		return string(rune(code))
	})
	decoded = escapeReplacer.Replace(decoded)
	return newlineRun.ReplaceAllString(decoded, "<br />")
}
