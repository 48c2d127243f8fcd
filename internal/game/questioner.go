package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/twentyq/api/internal/llm"
)

// Questioner generates the next strategic question in llm-asks mode, and
// performs the readiness assessment that lets the guesser skip ahead to a
// final guess.
type Questioner struct {
	client llm.Client
}

func NewQuestioner(client llm.Client) *Questioner {
	return &Questioner{client: client}
}

type questionResponse struct {
	Question string `json:"question"`
}

type readinessResponse struct {
	Ready      bool   `json:"ready"`
	Confidence string `json:"confidence"`
}

// fallbackQuestions is cycled through when the LLM is unavailable.
// Already-asked questions are skipped case-insensitively.
var fallbackQuestions = []string{
	"Is it a living thing?",
	"Is it man-made?",
	"Is it bigger than a car?",
	"Can you hold it in one hand?",
	"Is it found indoors?",
	"Is it something you can eat?",
	"Is it used every day?",
	"Does it make a sound?",
	"Is it found in nature?",
	"Would a child recognize it?",
	"Is it older than a century?",
	"Is it associated with a specific place?",
}

// catchAllQuestion is returned when every fallback has been asked already.
const catchAllQuestion = "Is it something most people would recognize?"

// forbiddenTerms reject questions about the word as text rather than the
// thing it names.
var forbiddenTerms = []string{
	"spell", "letter", "letters", "length", "syllable", "rhyme",
	"start with", "starts with", "end with", "ends with",
	"how many characters", "alphabet",
}

// Next returns the next question. The secret is passed only so the model
// can keep its question plausible; the prompt forbids using it to jump to
// the answer.
func (q *Questioner) Next(ctx context.Context, secret string, history []QA) string {
	if q.client != nil {
		prompt := fmt.Sprintf(llm.QuestionPrompt, secret, formatHistory(history))
		response, err := q.client.Generate(ctx, prompt)
		if err == nil {
			if question := parseQuestion(response); question != "" && !spellingQuestion(question) {
				return question
			}
			log.Printf("Warning: LLM produced an unusable question, using fallback")
		} else {
			log.Printf("Warning: question via LLM failed, using fallback: %v", err)
		}
	}

	return fallbackQuestion(history)
}

// Ready reports whether the guesser believes the history identifies one
// specific thing. Upstream failure means not ready.
func (q *Questioner) Ready(ctx context.Context, history []QA) bool {
	if q.client == nil {
		return false
	}

	prompt := fmt.Sprintf(llm.ReadinessPrompt, formatHistory(history))
	response, err := q.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Warning: readiness check failed: %v", err)
		return false
	}

	jsonStr, err := llm.ExtractJSON(response)
	if err != nil {
		return false
	}

	var rr readinessResponse
	if err := json.Unmarshal([]byte(jsonStr), &rr); err != nil {
		return false
	}
	return rr.Ready
}

func parseQuestion(response string) string {
	if jsonStr, err := llm.ExtractJSON(response); err == nil {
		var qr questionResponse
		if err := json.Unmarshal([]byte(jsonStr), &qr); err == nil {
			return strings.TrimSpace(qr.Question)
		}
	}
	return ""
}

// spellingQuestion filters questions about orthographic properties, which
// are forbidden regardless of what the model produced.
func spellingQuestion(question string) bool {
	lower := strings.ToLower(question)
	for _, term := range forbiddenTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func fallbackQuestion(history []QA) string {
	asked := make(map[string]struct{}, len(history))
	for _, qa := range history {
		asked[strings.ToLower(strings.TrimSpace(qa.Question))] = struct{}{}
	}

	for _, candidate := range fallbackQuestions {
		if _, ok := asked[strings.ToLower(candidate)]; !ok {
			return candidate
		}
	}
	return catchAllQuestion
}
