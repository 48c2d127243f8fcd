package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestEngine(client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}) *Engine {
	if client == nil {
		return NewEngine(nil, NewStore())
	}
	return NewEngine(client, NewStore())
}

func startHumanGame(t *testing.T, e *Engine) *Session {
	t.Helper()
	s, err := e.Start(context.Background(), ModeHumanAsks, DifficultyEasy, CategoryAnimal)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return s
}

func TestStartCreatesSession(t *testing.T) {
	e := newTestEngine(nil)
	s := startHumanGame(t, e)

	if s.ID == "" {
		t.Error("expected non-empty session id")
	}
	if s.Word == "" {
		t.Error("expected non-empty secret word")
	}
	if !s.Active || s.Paused {
		t.Error("expected active unpaused session")
	}
	if s.QuestionCount() != 0 || s.HintsUsed != 0 {
		t.Error("expected fresh counters")
	}
	if got := e.Store().Current(); got == nil || got.ID != s.ID {
		t.Error("expected session to be current")
	}
}

func TestStartRejectsBadInputs(t *testing.T) {
	e := newTestEngine(nil)
	ctx := context.Background()

	if _, err := e.Start(ctx, "spectator", "", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("bad mode: got %v", err)
	}
	if _, err := e.Start(ctx, ModeHumanAsks, "impossible", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("bad difficulty: got %v", err)
	}
	if _, err := e.Start(ctx, ModeHumanAsks, DifficultyEasy, "vegetable"); !errors.Is(err, ErrValidation) {
		t.Errorf("bad category: got %v", err)
	}
	if e.Store().Current() != nil {
		t.Error("rejected start must not create a session")
	}
}

func TestStartAbandonsPriorSession(t *testing.T) {
	e := newTestEngine(nil)
	first := startHumanGame(t, e)
	second := startHumanGame(t, e)

	if first.Active {
		t.Error("expected prior session to be abandoned")
	}
	if got := e.Store().Current(); got.ID != second.ID {
		t.Error("expected new session to be current")
	}
	// Abandoned games count as neither win nor loss.
	if n := len(e.Store().Finished()); n != 0 {
		t.Errorf("expected empty archive, got %d", n)
	}
}

func TestAskAppendsAndCounts(t *testing.T) {
	e := newTestEngine(nil)
	startHumanGame(t, e)

	res, err := e.Ask(context.Background(), "Is it alive?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if res.QuestionCount != 1 {
		t.Errorf("expected count 1, got %d", res.QuestionCount)
	}
	if res.Answer == "" {
		t.Error("expected non-empty answer")
	}

	s := e.Store().Current()
	if len(s.Questions) != 1 || s.Questions[0].Sequence != 1 {
		t.Error("expected one entry with sequence 1")
	}
	if s.Questions[0].AskedByLLM {
		t.Error("human question marked as LLM-asked")
	}
}

func TestAskValidation(t *testing.T) {
	e := newTestEngine(nil)
	ctx := context.Background()

	if _, err := e.Ask(ctx, "Is it alive?"); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("no session: got %v", err)
	}

	startHumanGame(t, e)
	if _, err := e.Ask(ctx, "   "); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty input: got %v", err)
	}
}

func TestAskWrongMode(t *testing.T) {
	e := newTestEngine(nil)
	if _, err := e.Start(context.Background(), ModeLLMAsks, DifficultyEasy, CategoryAnimal); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := e.Ask(context.Background(), "Is it alive?"); !errors.Is(err, ErrWrongMode) {
		t.Errorf("expected ErrWrongMode, got %v", err)
	}
}

func TestQuestionBudgetExhaustion(t *testing.T) {
	e := newTestEngine(nil)
	s := startHumanGame(t, e)
	ctx := context.Background()

	for i := 0; i < MaxQuestions; i++ {
		if _, err := e.Ask(ctx, fmt.Sprintf("Is it question number %d?", i)); err != nil {
			t.Fatalf("Ask %d failed: %v", i, err)
		}
	}
	if s.QuestionCount() != MaxQuestions {
		t.Fatalf("expected %d questions, got %d", MaxQuestions, s.QuestionCount())
	}

	// The 21st question is refused; the session stays active so the
	// player still gets a final guess.
	if _, err := e.Ask(ctx, "One more?"); !errors.Is(err, ErrMaxQuestions) {
		t.Fatalf("expected ErrMaxQuestions, got %v", err)
	}
	if !s.Active {
		t.Fatal("session must stay active after budget exhaustion")
	}

	secret := s.Word
	res, err := e.Guess(ctx, "definitely-wrong-guess")
	if err != nil {
		t.Fatalf("Guess failed: %v", err)
	}
	if res.Correct {
		t.Fatal("expected wrong guess to lose")
	}
	if res.Word != secret {
		t.Errorf("revealed word %q, want %q", res.Word, secret)
	}
	if s.Active {
		t.Error("expected terminal session")
	}
}

func TestGuessCorrectTerminates(t *testing.T) {
	e := newTestEngine(nil)
	s := startHumanGame(t, e)

	res, err := e.Guess(context.Background(), "  "+s.Word+"! ")
	if err != nil {
		t.Fatalf("Guess failed: %v", err)
	}
	if !res.Correct {
		t.Fatal("expected normalized exact guess to win")
	}
	if !s.Won || s.Active {
		t.Error("expected won terminal state")
	}
	if e.Store().Current() != nil {
		t.Error("expected current slot to be cleared")
	}
	if len(e.Store().Finished()) != 1 {
		t.Error("expected session in archive")
	}
}

func TestGuessEmptyInput(t *testing.T) {
	e := newTestEngine(nil)
	startHumanGame(t, e)
	if _, err := e.Guess(context.Background(), " "); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestHintLadder(t *testing.T) {
	e := newTestEngine(nil)
	s := startHumanGame(t, e)
	ctx := context.Background()

	if len(s.Hints) != 3 {
		t.Fatalf("expected 3 hints, got %d", len(s.Hints))
	}

	seen := make(map[string]struct{})
	for i := 1; i <= 3; i++ {
		res, err := e.Hint(ctx)
		if err != nil {
			t.Fatalf("Hint %d failed: %v", i, err)
		}
		if res.HintsUsed != i {
			t.Errorf("hint %d: HintsUsed = %d", i, res.HintsUsed)
		}
		if _, dup := seen[res.Hint]; dup {
			t.Errorf("duplicate hint %q", res.Hint)
		}
		seen[res.Hint] = struct{}{}
	}

	if _, err := e.Hint(ctx); !errors.Is(err, ErrNoHints) {
		t.Errorf("expected ErrNoHints, got %v", err)
	}
	if s.HintsUsed != 3 {
		t.Errorf("failed hint request must not change state, HintsUsed = %d", s.HintsUsed)
	}
}

func TestPauseGatesQuestions(t *testing.T) {
	e := newTestEngine(nil)
	startHumanGame(t, e)
	ctx := context.Background()

	if err := e.Pause(ctx); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if _, err := e.Ask(ctx, "Is it alive?"); !errors.Is(err, ErrPaused) {
		t.Errorf("expected ErrPaused, got %v", err)
	}
	if _, err := e.Guess(ctx, "cat"); !errors.Is(err, ErrPaused) {
		t.Errorf("expected ErrPaused for guess, got %v", err)
	}

	// Double pause is invalid.
	if err := e.Pause(ctx); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}

	if err := e.Resume(ctx); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if _, err := e.Ask(ctx, "Is it alive?"); err != nil {
		t.Errorf("Ask after resume failed: %v", err)
	}

	// Resume without pause is invalid.
	if err := e.Resume(ctx); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestPauseExcludesElapsedTime(t *testing.T) {
	e := newTestEngine(nil)
	s := startHumanGame(t, e)
	ctx := context.Background()

	before := s.Elapsed()
	if err := e.Pause(ctx); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := e.Resume(ctx); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}

	after := s.Elapsed()
	if delta := after - before; delta > 25*time.Millisecond {
		t.Errorf("pause interval leaked into elapsed time: %v", delta)
	}
}

func TestStopRevealsWord(t *testing.T) {
	e := newTestEngine(nil)
	s := startHumanGame(t, e)

	word, err := e.Stop(context.Background())
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if word != s.Word {
		t.Errorf("revealed %q, want %q", word, s.Word)
	}
	if s.Active || s.Won {
		t.Error("expected non-win terminal state")
	}
	if len(e.Store().Finished()) != 1 {
		t.Error("expected stopped session in archive")
	}
}

func TestEndHookFires(t *testing.T) {
	e := newTestEngine(nil)
	var ended *Session
	e.SetEndHook(func(s *Session) { ended = s })

	s := startHumanGame(t, e)
	if _, err := e.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if ended == nil || ended.ID != s.ID {
		t.Error("expected end hook to receive the terminated session")
	}
}

func TestLLMQuestionTurnCounts(t *testing.T) {
	client := &scriptedClient{
		selectWord: `{"word": "lighthouse", "category": "place", "difficulty": "medium", "hints": ["h1", "h2", "h3"]}`,
		question:   `{"question": "Is it man-made?"}`,
		answer:     `{"answer": "Yes, it is."}`,
		ready:      `{"ready": false}`,
	}
	e := newTestEngine(client)
	s, err := e.Start(context.Background(), ModeLLMAsks, DifficultyMedium, CategoryPlace)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	res, err := e.QuestionTurn(context.Background())
	if err != nil {
		t.Fatalf("QuestionTurn failed: %v", err)
	}
	if res.QuestionCount != 1 {
		t.Errorf("expected count 1, got %d", res.QuestionCount)
	}
	if res.Question != "Is it man-made?" {
		t.Errorf("unexpected question %q", res.Question)
	}
	if !s.Questions[0].AskedByLLM {
		t.Error("expected entry marked as LLM-asked")
	}
}

func TestLLMQuestionTurnRejectedDoesNotCount(t *testing.T) {
	client := &scriptedClient{
		selectWord: `{"word": "lighthouse", "category": "place", "difficulty": "medium", "hints": ["h1", "h2", "h3"]}`,
		question:   `{"question": "Tell me everything about it"}`,
		answer:     `{"answer": "Please ask a yes/no question"}`,
	}
	e := newTestEngine(client)
	s, err := e.Start(context.Background(), ModeLLMAsks, DifficultyMedium, CategoryPlace)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	res, err := e.QuestionTurn(context.Background())
	if err != nil {
		t.Fatalf("QuestionTurn failed: %v", err)
	}
	if !res.Rejected {
		t.Fatal("expected rejected turn")
	}
	if res.Answer != RejectionAnswer {
		t.Errorf("expected rejection literal, got %q", res.Answer)
	}
	if s.QuestionCount() != 0 {
		t.Errorf("rejected turn must not consume budget, count = %d", s.QuestionCount())
	}
}

func TestLLMAnswerTurnRejectedDoesNotAppend(t *testing.T) {
	client := &scriptedClient{
		selectWord: `{"word": "lighthouse", "category": "place", "difficulty": "medium", "hints": ["h1", "h2", "h3"]}`,
		answer:     `{"answer": "Please ask a yes/no question"}`,
	}
	e := newTestEngine(client)
	s, err := e.Start(context.Background(), ModeLLMAsks, DifficultyMedium, CategoryPlace)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	res, err := e.AnswerTurn(context.Background(), "Tell me everything about it")
	if err != nil {
		t.Fatalf("AnswerTurn failed: %v", err)
	}
	if res.Answer != RejectionAnswer {
		t.Errorf("expected rejection literal, got %q", res.Answer)
	}
	if res.QuestionCount != 0 {
		t.Errorf("rejected question must not consume budget, count = %d", res.QuestionCount)
	}
	if len(s.Questions) != 0 {
		t.Errorf("rejected question must not append, log has %d entries", len(s.Questions))
	}
}

func TestLLMQuestionTurnEarlyWin(t *testing.T) {
	client := &scriptedClient{
		selectWord: `{"word": "lighthouse", "category": "place", "difficulty": "medium", "hints": ["h1", "h2", "h3"]}`,
		question:   `{"question": "Is it a lighthouse?"}`,
		answer:     `{"answer": "Yes, that's exactly it!"}`,
	}
	e := newTestEngine(client)
	s, err := e.Start(context.Background(), ModeLLMAsks, DifficultyMedium, CategoryPlace)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	res, err := e.QuestionTurn(context.Background())
	if err != nil {
		t.Fatalf("QuestionTurn failed: %v", err)
	}
	if !res.Won {
		t.Fatal("expected early win")
	}
	if res.Word != "lighthouse" {
		t.Errorf("expected reveal, got %q", res.Word)
	}
	if s.Active || !s.Won {
		t.Error("expected won terminal state")
	}
	if len(e.Store().Finished()) != 1 {
		t.Error("expected archived session")
	}
}

func TestLLMReadinessShortCircuit(t *testing.T) {
	client := &scriptedClient{
		selectWord: `{"word": "lighthouse", "category": "place", "difficulty": "medium", "hints": ["h1", "h2", "h3"]}`,
		question:   `{"question": "Is it man-made?"}`,
		answer:     `{"answer": "Yes, it is."}`,
		ready:      `{"ready": false}`,
	}
	e := newTestEngine(client)
	if _, err := e.Start(context.Background(), ModeLLMAsks, DifficultyMedium, CategoryPlace); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := e.QuestionTurn(ctx); err != nil {
			t.Fatalf("turn %d failed: %v", i, err)
		}
	}

	// Count is now 4 (even, >= 4): the readiness check runs and reports
	// ready, so the turn short-circuits without asking.
	client.ready = `{"ready": true, "confidence": "high"}`
	res, err := e.QuestionTurn(ctx)
	if err != nil {
		t.Fatalf("readiness turn failed: %v", err)
	}
	if !res.ReadyToGuess {
		t.Fatal("expected ready-to-guess short circuit")
	}
	if res.QuestionCount != 4 {
		t.Errorf("short-circuit must not consume budget, count = %d", res.QuestionCount)
	}
}

func TestLLMGuessTurn(t *testing.T) {
	client := &scriptedClient{
		selectWord: `{"word": "lighthouse", "category": "place", "difficulty": "medium", "hints": ["h1", "h2", "h3"]}`,
		guess:      `{"guess": "lighthouse"}`,
	}
	e := newTestEngine(client)
	s, err := e.Start(context.Background(), ModeLLMAsks, DifficultyMedium, CategoryPlace)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	res, err := e.GuessTurn(context.Background())
	if err != nil {
		t.Fatalf("GuessTurn failed: %v", err)
	}
	if !res.Correct {
		t.Fatal("expected correct guess")
	}
	if res.Guess != "lighthouse" {
		t.Errorf("unexpected guess %q", res.Guess)
	}
	if s.Active {
		t.Error("expected terminal session")
	}
}

func TestLLMTurnsWrongMode(t *testing.T) {
	e := newTestEngine(nil)
	startHumanGame(t, e)
	ctx := context.Background()

	if _, err := e.QuestionTurn(ctx); !errors.Is(err, ErrWrongMode) {
		t.Errorf("QuestionTurn: got %v", err)
	}
	if _, err := e.GuessTurn(ctx); !errors.Is(err, ErrWrongMode) {
		t.Errorf("GuessTurn: got %v", err)
	}
	if _, err := e.AnswerTurn(ctx, "Is it alive?"); !errors.Is(err, ErrWrongMode) {
		t.Errorf("AnswerTurn: got %v", err)
	}
}

func TestSessionBusy(t *testing.T) {
	e := newTestEngine(nil)
	s := startHumanGame(t, e)

	// Simulate an outstanding turn holding the session lock.
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := e.Ask(context.Background(), "Is it alive?"); !errors.Is(err, ErrSessionBusy) {
		t.Errorf("expected ErrSessionBusy, got %v", err)
	}
}

// Summaries are served from live sessions while turns mutate them; run
// with -race.
func TestSummarizeConcurrentWithTurns(t *testing.T) {
	e := newTestEngine(nil)
	s := startHumanGame(t, e)
	ctx := context.Background()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			s.Summarize()
			s.Elapsed()
			s.Outcome()
			s.History()
		}
	}()

	for i := 0; i < 10; i++ {
		if _, err := e.Ask(ctx, fmt.Sprintf("Question %d?", i)); err != nil {
			t.Fatalf("Ask failed: %v", err)
		}
	}
	if _, err := e.Hint(ctx); err != nil {
		t.Fatalf("Hint failed: %v", err)
	}
	if err := e.Pause(ctx); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if err := e.Resume(ctx); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if _, err := e.Guess(ctx, "wrong answer"); err != nil {
		t.Fatalf("Guess failed: %v", err)
	}

	close(done)
	wg.Wait()

	if got := s.Summarize(); got.QuestionCount != 10 || got.Active {
		t.Errorf("unexpected final summary %+v", got)
	}
}

func TestQuestionCountInvariant(t *testing.T) {
	e := newTestEngine(nil)
	s := startHumanGame(t, e)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := e.Ask(ctx, fmt.Sprintf("Question %d?", i)); err != nil {
			t.Fatalf("Ask failed: %v", err)
		}
		if got := s.QuestionCount(); got != len(s.Questions) {
			t.Fatalf("count %d != log length %d", got, len(s.Questions))
		}
		if got := s.QuestionCount(); got < 0 || got > MaxQuestions {
			t.Fatalf("count %d out of range", got)
		}
	}
}
