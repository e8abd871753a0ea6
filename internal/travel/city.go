// Package travel holds request parsing for the planner.
package travel

import (
	"regexp"
	"strings"
	"unicode"
)

// space is the full Unicode whitespace set: RE2's \s alone is ASCII-only and
// misses \v, NBSP and the other separators found in pasted text.
const space = `\s\v\p{Z}\x{1c}-\x{1f}\x{85}`

// cityPattern matches "to <letters and spaces>". The capture runs across words
// until the first character that is neither a letter nor whitespace, so
// "trip to Paris in May" captures "Paris in May".
var cityPattern = regexp.MustCompile(`(?i)to[` + space + `]+([A-Za-z` + space + `]+)`)

// ExtractCity returns the destination named after the first "to" in text.
func ExtractCity(text string) (string, bool) {
	m := cityPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	city := strings.TrimFunc(m[1], isSpace)
	if city == "" {
		return "", false
	}
	return city, true
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r) || (r >= 0x1c && r <= 0x1f)
}
