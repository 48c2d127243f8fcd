package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"unicode"

	"github.com/twentyq/api/internal/filter"
	"github.com/twentyq/api/internal/llm"
)

// Judge decides whether a final guess matches the secret word. Exact
// normalized matches and simple grammatical variations never consult the
// LLM; the semantic-equivalence path covers synonyms and alternative names.
type Judge struct {
	client llm.Client
}

func NewJudge(client llm.Client) *Judge {
	return &Judge{client: client}
}

type judgeResponse struct {
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
}

// Verdict is the outcome of judging one guess. Feedback is always
// non-empty, even when the LLM call failed.
type Verdict struct {
	Correct  bool
	Feedback string
}

func (j *Judge) Judge(ctx context.Context, secret, guess string, history []QA) Verdict {
	normGuess, normSecret := Normalize(guess), Normalize(secret)
	if normGuess == normSecret || filter.IsVariation(normGuess, normSecret) {
		return Verdict{Correct: true, Feedback: winFeedback(secret)}
	}

	if j.client != nil {
		if v, err := j.judgeViaLLM(ctx, secret, guess); err == nil {
			return v
		} else {
			log.Printf("Warning: guess judgment via LLM failed, treating as incorrect: %v", err)
		}
	}

	return Verdict{Correct: false, Feedback: loseFeedback(secret)}
}

func (j *Judge) judgeViaLLM(ctx context.Context, secret, guess string) (Verdict, error) {
	prompt := fmt.Sprintf(llm.JudgePrompt, secret, guess)
	response, err := j.client.Generate(ctx, prompt)
	if err != nil {
		return Verdict{}, err
	}

	jsonStr, err := llm.ExtractJSON(response)
	if err != nil {
		return Verdict{}, err
	}

	var jr judgeResponse
	if err := json.Unmarshal([]byte(jsonStr), &jr); err != nil {
		return Verdict{}, err
	}

	feedback := strings.TrimSpace(jr.Feedback)
	if feedback == "" {
		if jr.Correct {
			feedback = winFeedback(secret)
		} else {
			feedback = loseFeedback(secret)
		}
	}
	return Verdict{Correct: jr.Correct, Feedback: feedback}, nil
}

func winFeedback(secret string) string {
	return fmt.Sprintf("Yes, it's %s! You win!", secret)
}

func loseFeedback(secret string) string {
	return fmt.Sprintf("No, that's not right. The word was %s. You lose.", secret)
}

// Normalize lowercases, trims, strips punctuation and collapses whitespace.
// It is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
