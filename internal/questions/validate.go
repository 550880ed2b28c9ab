package questions

import (
	"strings"

	"github.com/groblegark/gatewarden/internal/model"
)

// Normalize prepares a submitted or accepted answer for comparison:
// leading and trailing whitespace is trimmed and the text is case-folded.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate reports whether the submitted text matches any accepted
// answer for the question. Both sides are normalized identically; the
// comparison is exact match after normalization, with no partial credit
// and no fuzzy matching.
func Validate(q model.Question, submitted string) bool {
	got := Normalize(submitted)
	for _, want := range q.Answers {
		if got == Normalize(want) {
			return true
		}
	}
	return false
}
