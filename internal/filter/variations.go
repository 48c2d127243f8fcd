package filter

import (
	"strings"
)

// IsVariation reports whether candidate is a grammatical variation of base.
// A guess of "penguins" for the secret "penguin" is the same answer; the
// judge accepts it without consulting the LLM.
func IsVariation(candidate, base string) bool {
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	base = strings.ToLower(strings.TrimSpace(base))
	if candidate == "" || base == "" {
		return false
	}
	if candidate == base {
		return true
	}
	if Variations(base)[candidate] {
		return true
	}
	// Symmetric: "penguin" for a secret stored as "penguins".
	return Variations(candidate)[base]
}

// Variations generates common grammatical forms of a word: plurals, verb
// forms, comparatives. The set always contains the word itself.
func Variations(word string) map[string]bool {
	word = strings.ToLower(strings.TrimSpace(word))
	variations := map[string]bool{word: true}
	if word == "" {
		return variations
	}

	// Plural forms
	variations[word+"s"] = true
	variations[word+"es"] = true
	if strings.HasSuffix(word, "y") && len(word) >= 2 && isConsonant(word[len(word)-2]) {
		base := word[:len(word)-1]
		variations[base+"ies"] = true
		variations[base+"ied"] = true
		variations[base+"ier"] = true
		variations[base+"iest"] = true
	}

	// Verb forms (-ed, -ing)
	variations[word+"ed"] = true
	variations[word+"ing"] = true

	// Consonant doubling (e.g., stop -> stopped, stopping)
	if len(word) >= 3 && isConsonant(word[len(word)-1]) && isVowel(word[len(word)-2]) && isConsonant(word[len(word)-3]) {
		doubled := word + string(word[len(word)-1])
		variations[doubled+"ed"] = true
		variations[doubled+"ing"] = true
		variations[doubled+"er"] = true
		variations[doubled+"est"] = true
	}

	// Words ending in 'e' (e.g., make -> making)
	if strings.HasSuffix(word, "e") {
		base := word[:len(word)-1]
		variations[base+"ing"] = true
		variations[base+"ed"] = true
		variations[word+"r"] = true
		variations[word+"st"] = true
	}

	// Comparative and superlative
	variations[word+"er"] = true
	variations[word+"est"] = true

	return variations
}

func isVowel(c byte) bool {
	return c == 'a' || c == 'e' || c == 'i' || c == 'o' || c == 'u'
}

func isConsonant(c byte) bool {
	return c >= 'a' && c <= 'z' && !isVowel(c)
}
