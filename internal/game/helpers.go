package game

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// formatHistory renders prior exchanges for prompt interpolation.
func formatHistory(history []QA) string {
	if len(history) == 0 {
		return "(no questions asked yet)"
	}

	var b strings.Builder
	for i, qa := range history {
		fmt.Fprintf(&b, "%d. Q: %s\n   A: %s\n", i+1, qa.Question, qa.Answer)
	}
	return strings.TrimRight(b.String(), "\n")
}

// directGuessPattern matches questions that are really a final guess in
// disguise, e.g. "Is it a lighthouse?" or "Is it the Eiffel Tower?".
var directGuessPattern = regexp.MustCompile(`(?i)^\s*is\s+it\s+(?:(a|an|the)\s+)?(.+?)\s*\??\s*$`)

// directGuessTarget extracts the guessed thing from a question phrased as
// a guess. The boolean is false for ordinary property questions.
func directGuessTarget(question string) (string, bool) {
	m := directGuessPattern.FindStringSubmatch(question)
	if m == nil {
		return "", false
	}
	article, target := m[1], strings.TrimSpace(m[2])
	// Property questions ("is it alive", "is it bigger than a car") also
	// match the pattern; a multi-clause remainder is not a guess.
	if target == "" || len(strings.Fields(target)) > 4 {
		return "", false
	}
	// Without an article the remainder is usually an adjective ("is it
	// alive?"); only a proper-noun-looking target counts as a guess.
	if article == "" {
		r, _ := utf8.DecodeRuneInString(target)
		if !unicode.IsUpper(r) {
			return "", false
		}
	}
	return target, true
}
