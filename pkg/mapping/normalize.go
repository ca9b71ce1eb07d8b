package mapping

import (
	"regexp"
	"strings"
)

var (
	parenContent   = regexp.MustCompile(`\([^)]*\)`)
	replaceWithSpace = strings.NewReplacer("_", " ", "-", " ", ".", " ", "/", " ", `\`, " ")
	nonCanonicalChar = regexp.MustCompile(`[^a-z0-9& ]`)
	runOfSpaces      = regexp.MustCompile(`\s+`)
)

// fillerWords are dropped by normalizeAggressive; they carry no
// discriminating meaning between two line-item labels.
var fillerWords = map[string]struct{}{
	"total": {}, "net": {}, "less": {}, "gross": {}, "of": {}, "the": {},
	"and": {}, "in": {}, "from": {}, "for": {}, "to": {}, "at": {}, "on": {},
}

// normalize lowercases s, strips parenthesized content, replaces separator
// punctuation with spaces, drops everything outside [a-z0-9& ], and
// collapses whitespace.
func normalize(s string) string {
	out := strings.ToLower(strings.TrimSpace(s))
	out = parenContent.ReplaceAllString(out, "")
	out = replaceWithSpace.Replace(out)
	out = nonCanonicalChar.ReplaceAllString(out, "")
	out = runOfSpaces.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// normalizeAggressive applies normalize, then drops filler words such as
// "total" and "net" that analysts sprinkle inconsistently across labels.
func normalizeAggressive(s string) string {
	base := normalize(s)
	if base == "" {
		return base
	}
	tokens := strings.Split(base, " ")
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, filler := fillerWords[tok]; filler {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}
