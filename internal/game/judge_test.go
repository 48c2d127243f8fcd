package game

import (
	"context"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Elephant", "elephant"},
		{"trim", "  dog  ", "dog"},
		{"punctuation", "new york!", "new york"},
		{"collapse whitespace", "new   york", "new york"},
		{"mixed", "  New   York!! ", "new york"},
		{"empty", "", ""},
		{"only punctuation", "?!.,", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"New York!", "  Elephant ", "a   b  c", "", "¡café!"}
	for _, s := range inputs {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}

func TestJudgeExactMatchSkipsLLM(t *testing.T) {
	// Any LLM call would fail; an exact normalized match must not need one.
	client := &failingClient{}
	j := NewJudge(client)

	v := j.Judge(context.Background(), "New York", "new york!", nil)
	if !v.Correct {
		t.Fatal("expected exact normalized match to be correct")
	}
	if client.calls != 0 {
		t.Errorf("expected no LLM calls, got %d", client.calls)
	}
	if v.Feedback == "" {
		t.Error("expected non-empty feedback")
	}
}

func TestJudgeGrammaticalVariationSkipsLLM(t *testing.T) {
	client := &failingClient{}
	j := NewJudge(client)

	v := j.Judge(context.Background(), "penguin", "Penguins", nil)
	if !v.Correct {
		t.Fatal("expected plural guess to be correct")
	}
	if client.calls != 0 {
		t.Errorf("expected no LLM calls, got %d", client.calls)
	}
}

func TestJudgeSemanticEquivalence(t *testing.T) {
	client := &fakeClient{fn: func(prompt string) (string, error) {
		return `{"correct": true, "feedback": "Sofa and couch are the same thing. You win!"}`, nil
	}}
	j := NewJudge(client)

	v := j.Judge(context.Background(), "sofa", "couch", nil)
	if !v.Correct {
		t.Fatal("expected synonym to be judged correct")
	}
	if !strings.Contains(v.Feedback, "win") {
		t.Errorf("unexpected feedback: %q", v.Feedback)
	}
}

func TestJudgeFallbackOnFailure(t *testing.T) {
	j := NewJudge(&failingClient{})

	v := j.Judge(context.Background(), "elephant", "giraffe", nil)
	if v.Correct {
		t.Fatal("expected incorrect on upstream failure")
	}
	if !strings.Contains(v.Feedback, "elephant") {
		t.Errorf("fallback feedback should reveal the word, got %q", v.Feedback)
	}
}

func TestJudgeNoClient(t *testing.T) {
	j := NewJudge(nil)

	v := j.Judge(context.Background(), "pizza", "pizza", nil)
	if !v.Correct {
		t.Fatal("expected exact match without client")
	}

	v = j.Judge(context.Background(), "pizza", "calzone", nil)
	if v.Correct {
		t.Fatal("expected mismatch without client")
	}
	if v.Feedback == "" {
		t.Error("expected non-empty feedback without client")
	}
}
