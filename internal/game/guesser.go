package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/twentyq/api/internal/llm"
)

// fallbackGuess is the placeholder used when no guess can be generated.
const fallbackGuess = "a mystery"

// Guesser proposes the single best final guess from the history alone.
// It never sees the secret word.
type Guesser struct {
	client llm.Client
}

func NewGuesser(client llm.Client) *Guesser {
	return &Guesser{client: client}
}

type guessResponse struct {
	Guess string `json:"guess"`
}

func (g *Guesser) Guess(ctx context.Context, history []QA) string {
	if g.client == nil {
		return fallbackGuess
	}

	prompt := fmt.Sprintf(llm.GuessPrompt, formatHistory(history))
	response, err := g.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Warning: guess via LLM failed, using placeholder: %v", err)
		return fallbackGuess
	}

	jsonStr, err := llm.ExtractJSON(response)
	if err != nil {
		return fallbackGuess
	}

	var gr guessResponse
	if err := json.Unmarshal([]byte(jsonStr), &gr); err != nil {
		return fallbackGuess
	}

	guess := strings.TrimSpace(gr.Guess)
	if guess == "" {
		return fallbackGuess
	}
	return guess
}
