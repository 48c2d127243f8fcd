package validator

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode"
)

const (
	maxWords      = 3
	maxWordLength = 24
)

// CheckPlayable reports whether a candidate secret word has a playable
// shape: a short phrase of plain words, nothing a player could not guess
// by name. Model output that fails here falls back to the static table.
func CheckPlayable(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("empty word")
	}

	words := strings.Fields(text)
	if len(words) > maxWords {
		return fmt.Errorf("too many words: %d", len(words))
	}

	for _, w := range words {
		if len([]rune(w)) > maxWordLength {
			return fmt.Errorf("word too long: %q", w)
		}
		for _, r := range w {
			if !unicode.IsLetter(r) && r != '-' && r != '\'' {
				return fmt.Errorf("unexpected character %q in %q", r, w)
			}
		}
	}
	return nil
}

// DictionaryChecker verifies single words against the Free Dictionary API,
// caching hits locally. Network failures allow the word (fail-open): a
// missing dictionary must never block a game.
type DictionaryChecker struct {
	known      map[string]struct{}
	httpClient *http.Client
	mu         sync.RWMutex
}

func NewDictionaryChecker() *DictionaryChecker {
	return &DictionaryChecker{
		known: make(map[string]struct{}),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// IsKnownWord checks a word against the cache, then the API. Multi-word
// phrases are allowed without a lookup; the dictionary only covers single
// words.
func (d *DictionaryChecker) IsKnownWord(word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false
	}
	if strings.Contains(word, " ") {
		return true
	}

	d.mu.RLock()
	_, exists := d.known[word]
	d.mu.RUnlock()
	if exists {
		return true
	}

	return d.checkAPI(word)
}

func (d *DictionaryChecker) checkAPI(word string) bool {
	url := fmt.Sprintf("https://api.dictionaryapi.dev/api/v2/entries/en/%s", word)

	resp, err := d.httpClient.Get(url)
	if err != nil {
		log.Printf("Warning: dictionary API error for %q, allowing word: %v", word, err)
		return true
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		d.mu.Lock()
		d.known[word] = struct{}{}
		d.mu.Unlock()
		return true
	case http.StatusNotFound:
		return false
	default:
		log.Printf("Warning: dictionary API returned %d for %q, allowing word", resp.StatusCode, word)
		return true
	}
}
