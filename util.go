package tagify

import (
	"regexp"

	"github.com/AlekSi/pointer"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// splitFirst splits at the first run of whitespace.
func splitFirst(s string) (head string, rest string, ok bool) {
	loc := whitespaceRE.FindStringIndex(s)
	if loc == nil {
		return s, "", false
	}
	return s[:loc[0]], s[loc[1]:], true
}

func boolDefault(b *bool, dflt bool) bool {
	if b == nil {
		return dflt
	}
	return pointer.GetBool(b)
}
