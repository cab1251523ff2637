package tokenizer

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"
)

// titleAbbreviations end in a period without ending the sentence.
var titleAbbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "st": {},
	"prof": {}, "vs": {}, "jr": {}, "sr": {},
}

// SplitSentences breaks text into passages on line breaks and each passage
// into sentences on Unicode sentence boundaries. A boundary right after a
// title abbreviation such as "Mr." is ignored. Sentences are trimmed and
// empty ones dropped; order follows the text.
func SplitSentences(text string) []string {
	var out []string
	for _, passage := range strings.Split(text, "\n") {
		if strings.TrimSpace(passage) == "" {
			continue
		}
		var pending strings.Builder
		segments := sentences.FromString(passage)
		for segments.Next() {
			pending.WriteString(segments.Value())
			if endsWithAbbreviation(pending.String()) {
				continue
			}
			if s := strings.TrimSpace(pending.String()); s != "" {
				out = append(out, s)
			}
			pending.Reset()
		}
		if s := strings.TrimSpace(pending.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func endsWithAbbreviation(segment string) bool {
	fields := strings.Fields(segment)
	if len(fields) == 0 {
		return false
	}
	last := fields[len(fields)-1]
	if !strings.HasSuffix(last, ".") {
		return false
	}
	word := strings.ToLower(strings.TrimLeft(strings.TrimSuffix(last, "."), "(\"'"))
	_, ok := titleAbbreviations[word]
	return ok
}
