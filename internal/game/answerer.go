package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/twentyq/api/internal/llm"
)

// RejectionAnswer is the fixed reply for questions that cannot be answered
// yes or no. In llm-asks mode a turn that produces it does not count
// against the question budget.
const RejectionAnswer = "Please ask a yes/no question"

// Answerer produces the secret holder's reply to one question.
type Answerer struct {
	client llm.Client
}

func NewAnswerer(client llm.Client) *Answerer {
	return &Answerer{client: client}
}

type answerResponse struct {
	Answer string `json:"answer"`
}

// Answer returns a short reply beginning with "Yes" or "No", or the fixed
// rejection literal. The secret word never appears verbatim in the reply.
func (a *Answerer) Answer(ctx context.Context, secret, question string, history []QA) string {
	if a.client == nil {
		return heuristicAnswer(secret, question)
	}

	prompt := fmt.Sprintf(llm.AnswerPrompt, secret, question, formatHistory(history), secret)
	response, err := a.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Warning: answer via LLM failed, using heuristic: %v", err)
		return heuristicAnswer(secret, question)
	}

	answer := parseAnswer(response)
	if answer == "" {
		return heuristicAnswer(secret, question)
	}
	return sanitizeAnswer(secret, question, answer)
}

func parseAnswer(response string) string {
	if jsonStr, err := llm.ExtractJSON(response); err == nil {
		var ar answerResponse
		if err := json.Unmarshal([]byte(jsonStr), &ar); err == nil {
			return strings.TrimSpace(ar.Answer)
		}
	}
	// Some models ignore the JSON instruction and reply in plain text.
	return strings.TrimSpace(response)
}

// sanitizeAnswer enforces the answer contract on model output: the reply
// must begin with Yes/No or be the rejection literal, must not leak the
// secret, and stays short.
func sanitizeAnswer(secret, question, answer string) string {
	lower := strings.ToLower(answer)

	if strings.HasPrefix(lower, strings.ToLower(RejectionAnswer)) {
		return RejectionAnswer
	}
	if !strings.HasPrefix(lower, "yes") && !strings.HasPrefix(lower, "no") {
		return heuristicAnswer(secret, question)
	}
	if strings.Contains(lower, strings.ToLower(secret)) {
		return heuristicAnswer(secret, question)
	}

	if words := strings.Fields(answer); len(words) > 12 {
		answer = strings.Join(words[:12], " ")
	}
	return answer
}

// heuristicAnswer is the no-LLM fallback: a naive substring check against
// the question text, hedged so it never claims certainty.
func heuristicAnswer(secret, question string) string {
	if strings.Contains(strings.ToLower(question), strings.ToLower(secret)) {
		return "Yes, I think so."
	}
	return "No, I don't think so."
}

// affirmative reports whether an answer starts with yes.
func affirmative(answer string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "yes")
}
