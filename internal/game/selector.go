package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/twentyq/api/internal/llm"
	"github.com/twentyq/api/internal/validator"
)

// Selector picks the secret word for a new session. The LLM path is
// preferred; on any upstream failure it falls back to a static table so a
// game can always start.
type Selector struct {
	client llm.Client
}

func NewSelector(client llm.Client) *Selector {
	return &Selector{client: client}
}

type selectedWord struct {
	Word       string   `json:"word"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	Hints      []string `json:"hints"`
}

// fallbackWords has several entries per category so repeated fallback
// selections still vary.
var fallbackWords = map[Category][]string{
	CategoryAnimal:  {"elephant", "penguin", "dolphin", "kangaroo"},
	CategoryPlace:   {"library", "volcano", "lighthouse", "airport"},
	CategoryObject:  {"umbrella", "telescope", "scissors", "compass"},
	CategoryFood:    {"pizza", "avocado", "pancake", "noodles"},
	CategoryPerson:  {"teacher", "astronaut", "firefighter", "magician"},
	CategoryConcept: {"gravity", "friendship", "democracy", "silence"},
}

// Select returns a Word for the requested category and difficulty. An empty
// category means the selector chooses one uniformly at random. The returned
// word text is never empty.
func (s *Selector) Select(ctx context.Context, category Category, difficulty Difficulty) Word {
	if category == "" {
		category = Categories[rand.Intn(len(Categories))]
	}
	if difficulty == "" {
		difficulty = DifficultyMedium
	}

	if s.client != nil {
		if w, err := s.selectViaLLM(ctx, category, difficulty); err == nil {
			return w
		} else {
			log.Printf("Warning: word selection via LLM failed, using fallback: %v", err)
		}
	}

	return fallbackWord(category, difficulty)
}

func (s *Selector) selectViaLLM(ctx context.Context, category Category, difficulty Difficulty) (Word, error) {
	prompt := fmt.Sprintf(llm.SelectWordPrompt, category, difficulty, category, difficulty)
	response, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return Word{}, err
	}

	jsonStr, err := llm.ExtractJSON(response)
	if err != nil {
		return Word{}, err
	}

	var sel selectedWord
	if err := json.Unmarshal([]byte(jsonStr), &sel); err != nil {
		return Word{}, err
	}

	text := strings.ToLower(strings.TrimSpace(sel.Word))
	if err := validator.CheckPlayable(text); err != nil {
		return Word{}, fmt.Errorf("llm returned unplayable word: %w", err)
	}

	// Exactly three hints per game: truncate a rambling list, pad a
	// short one from the generic ladder.
	hints := sel.Hints
	if len(hints) > 3 {
		hints = hints[:3]
	}
	for _, h := range genericHints(text, category) {
		if len(hints) >= 3 {
			break
		}
		hints = append(hints, h)
	}

	return Word{
		Text:       text,
		Category:   category,
		Difficulty: difficulty,
		Hints:      hints,
	}, nil
}

func fallbackWord(category Category, difficulty Difficulty) Word {
	pool := fallbackWords[category]
	if len(pool) == 0 {
		pool = fallbackWords[CategoryObject]
	}
	text := pool[rand.Intn(len(pool))]
	return Word{
		Text:       text,
		Category:   category,
		Difficulty: difficulty,
		Hints:      genericHints(text, category),
	}
}

// genericHints synthesizes the three-hint ladder when the LLM did not
// provide one.
func genericHints(word string, category Category) []string {
	return []string{
		fmt.Sprintf("It belongs to the category: %s.", category),
		fmt.Sprintf("Its name has %d letters.", len(word)),
		fmt.Sprintf("Its name starts with the letter %q.", strings.ToUpper(word[:1])),
	}
}
