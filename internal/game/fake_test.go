package game

import (
	"context"
	"errors"
	"strings"
)

// fakeClient routes prompts to canned responses by matching marker text
// from the prompt templates.
type fakeClient struct {
	fn    func(prompt string) (string, error)
	calls int
}

func (f *fakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.fn == nil {
		return "", errors.New("no response configured")
	}
	return f.fn(prompt)
}

// failingClient always errors, exercising every fallback path.
type failingClient struct {
	calls int
}

func (f *failingClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return "", errors.New("upstream unavailable")
}

// scriptedClient answers each operation with a fixed JSON payload.
type scriptedClient struct {
	selectWord string
	answer     string
	question   string
	ready      string
	guess      string
	judge      string
}

func (s *scriptedClient) Generate(ctx context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Choose a secret word"):
		return s.selectWord, nil
	case strings.Contains(prompt, "secret holder"):
		return s.answer, nil
	case strings.Contains(prompt, "reviewing your progress"):
		return s.ready, nil
	case strings.Contains(prompt, "FINAL guess"):
		return s.guess, nil
	case strings.Contains(prompt, "Judge a final guess"):
		return s.judge, nil
	case strings.Contains(prompt, "You are the guesser"):
		return s.question, nil
	}
	return "", errors.New("unexpected prompt")
}
