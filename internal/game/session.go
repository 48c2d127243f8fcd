package game

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/twentyq/api/internal/llm"
)

// Engine drives the session state machine. It is the only component that
// mutates sessions; the LLM-backed collaborators are pure request/response.
type Engine struct {
	store      *Store
	selector   *Selector
	answerer   *Answerer
	questioner *Questioner
	guesser    *Guesser
	judge      *Judge

	// onEnd is invoked after a session reaches a terminal state, outside
	// the session lock. Used for persistence and cache invalidation.
	onEnd func(*Session)
}

func NewEngine(client llm.Client, store *Store) *Engine {
	return &Engine{
		store:      store,
		selector:   NewSelector(client),
		answerer:   NewAnswerer(client),
		questioner: NewQuestioner(client),
		guesser:    NewGuesser(client),
		judge:      NewJudge(client),
	}
}

func (e *Engine) SetEndHook(fn func(*Session)) {
	e.onEnd = fn
}

func (e *Engine) Store() *Store {
	return e.store
}

// Start selects a word and creates a new current session. Any prior active
// session is implicitly abandoned.
func (e *Engine) Start(ctx context.Context, mode Mode, difficulty Difficulty, category Category) (*Session, error) {
	if !ValidMode(mode) {
		return nil, ErrValidation
	}
	if difficulty != "" && !ValidDifficulty(difficulty) {
		return nil, ErrValidation
	}
	if category != "" && !ValidCategory(category) {
		return nil, ErrValidation
	}

	word := e.selector.Select(ctx, category, difficulty)

	s := &Session{
		ID:         uuid.NewString(),
		Word:       word.Text,
		Category:   word.Category,
		Difficulty: word.Difficulty,
		Mode:       mode,
		Hints:      word.Hints,
		Active:     true,
		StartedAt:  time.Now(),
	}
	e.store.Put(s)
	return s, nil
}

// lockCurrent fetches the current session and acquires its lock without
// waiting. A held lock means an LLM turn is outstanding.
func (e *Engine) lockCurrent() (*Session, error) {
	s := e.store.Current()
	if s == nil {
		return nil, ErrNoActiveSession
	}
	if !s.mu.TryLock() {
		return nil, ErrSessionBusy
	}
	if !s.Active {
		s.mu.Unlock()
		return nil, ErrNoActiveSession
	}
	return s, nil
}

// AskResult is the outcome of one counted question.
type AskResult struct {
	Question      string `json:"questionText"`
	Answer        string `json:"answerText"`
	QuestionCount int    `json:"questionCount"`
}

// Ask answers a caller-supplied question in human-asks mode. The log
// append and the count increment are a single mutation under the session
// lock; a failed precondition changes nothing.
func (e *Engine) Ask(ctx context.Context, question string) (AskResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return AskResult{}, ErrEmptyInput
	}

	s, err := e.lockCurrent()
	if err != nil {
		return AskResult{}, err
	}
	defer s.mu.Unlock()

	if s.Mode != ModeHumanAsks {
		return AskResult{}, ErrWrongMode
	}
	if s.Paused {
		return AskResult{}, ErrPaused
	}
	if s.QuestionCount() >= MaxQuestions {
		return AskResult{}, ErrMaxQuestions
	}

	answer := e.answerer.Answer(ctx, s.Word, question, s.History())
	s.state.Lock()
	s.Questions = append(s.Questions, QuestionEntry{
		Sequence: len(s.Questions) + 1,
		Question: question,
		Answer:   answer,
	})
	count := len(s.Questions)
	s.state.Unlock()

	return AskResult{Question: question, Answer: answer, QuestionCount: count}, nil
}

// Hint returns the next hint in the ladder. Hints remain available while
// paused; only questions and guesses are gated.
type HintResult struct {
	Hint       string `json:"hintText"`
	HintsUsed  int    `json:"hintsIssued"`
	TotalHints int    `json:"totalHints"`
}

func (e *Engine) Hint(ctx context.Context) (HintResult, error) {
	s, err := e.lockCurrent()
	if err != nil {
		return HintResult{}, err
	}
	defer s.mu.Unlock()

	if s.HintsUsed >= len(s.Hints) {
		return HintResult{}, ErrNoHints
	}

	hint := s.Hints[s.HintsUsed]
	s.state.Lock()
	s.HintsUsed++
	used := s.HintsUsed
	s.state.Unlock()
	return HintResult{Hint: hint, HintsUsed: used, TotalHints: len(s.Hints)}, nil
}

// Pause freezes elapsed-time accounting and gates question/guess turns.
func (e *Engine) Pause(ctx context.Context) error {
	s, err := e.lockCurrent()
	if err != nil {
		return err
	}
	defer s.mu.Unlock()

	if s.Paused {
		return ErrInvalidState
	}
	s.state.Lock()
	s.Paused = true
	s.PausedAt = time.Now()
	s.state.Unlock()
	return nil
}

// Resume folds the accumulated pause duration into StartedAt so elapsed
// time excludes the paused interval, then clears the pause marker.
func (e *Engine) Resume(ctx context.Context) error {
	s, err := e.lockCurrent()
	if err != nil {
		return err
	}
	defer s.mu.Unlock()

	if !s.Paused {
		return ErrInvalidState
	}
	s.state.Lock()
	s.StartedAt = s.StartedAt.Add(time.Since(s.PausedAt))
	s.Paused = false
	s.PausedAt = time.Time{}
	s.state.Unlock()
	return nil
}

// GuessResult is the terminal outcome of a final guess.
type GuessResult struct {
	Guess    string `json:"guessText"`
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedbackText"`
	Word     string `json:"revealedWord"`
}

// Guess judges a final guess and terminates the session either way.
func (e *Engine) Guess(ctx context.Context, guess string) (GuessResult, error) {
	guess = strings.TrimSpace(guess)
	if guess == "" {
		return GuessResult{}, ErrEmptyInput
	}

	s, err := e.lockCurrent()
	if err != nil {
		return GuessResult{}, err
	}

	if s.Paused {
		s.mu.Unlock()
		return GuessResult{}, ErrPaused
	}

	verdict := e.judge.Judge(ctx, s.Word, guess, s.History())
	e.finish(s, verdict.Correct)
	s.mu.Unlock()
	e.ended(s)

	return GuessResult{
		Guess:    guess,
		Correct:  verdict.Correct,
		Feedback: verdict.Feedback,
		Word:     s.Word,
	}, nil
}

// TurnResult is the outcome of one llm-asks turn.
type TurnResult struct {
	Question      string `json:"questionText"`
	Answer        string `json:"answerText"`
	QuestionCount int    `json:"questionCount"`
	// Rejected: the generated question was not a yes/no question; the
	// turn did not count and the caller should retry.
	Rejected bool `json:"rejected,omitempty"`
	// ReadyToGuess: the readiness assessment short-circuited the turn;
	// no question was asked and the caller should run the guess turn.
	ReadyToGuess bool `json:"readyToGuess,omitempty"`
	// Won: the early-win heuristic resolved the session.
	Won      bool   `json:"won,omitempty"`
	Feedback string `json:"feedbackText,omitempty"`
	Word     string `json:"revealedWord,omitempty"`
}

// QuestionTurn runs one autonomous question turn in llm-asks mode:
// readiness check (every even count from 4), question generation, answer,
// and the best-effort early-win shortcut.
func (e *Engine) QuestionTurn(ctx context.Context) (TurnResult, error) {
	s, err := e.lockCurrent()
	if err != nil {
		return TurnResult{}, err
	}

	if s.Mode != ModeLLMAsks {
		s.mu.Unlock()
		return TurnResult{}, ErrWrongMode
	}
	if s.Paused {
		s.mu.Unlock()
		return TurnResult{}, ErrPaused
	}
	count := s.QuestionCount()
	if count >= MaxQuestions {
		s.mu.Unlock()
		return TurnResult{}, ErrMaxQuestions
	}

	if count >= 4 && count%2 == 0 && e.questioner.Ready(ctx, s.History()) {
		s.mu.Unlock()
		return TurnResult{QuestionCount: count, ReadyToGuess: true}, nil
	}

	question := e.questioner.Next(ctx, s.Word, s.History())
	answer := e.answerer.Answer(ctx, s.Word, question, s.History())

	// A rejected question is not appended and does not consume budget.
	if answer == RejectionAnswer {
		s.mu.Unlock()
		return TurnResult{Question: question, Answer: answer, QuestionCount: count, Rejected: true}, nil
	}

	s.state.Lock()
	s.Questions = append(s.Questions, QuestionEntry{
		Sequence:   count + 1,
		Question:   question,
		Answer:     answer,
		AskedByLLM: true,
	})
	count = len(s.Questions)
	s.state.Unlock()

	res := TurnResult{Question: question, Answer: answer, QuestionCount: count}

	// Early-win shortcut: a question phrased as a guess plus an exact-match
	// acknowledgment ends the game without a separate guess phase. The
	// normalized comparison keeps this authoritative when it fires; the
	// phrasing check alone is best effort.
	won := false
	if target, ok := directGuessTarget(question); ok && affirmative(answer) {
		if Normalize(target) == Normalize(s.Word) || strings.Contains(strings.ToLower(answer), "exactly") {
			e.finish(s, true)
			won = true
			res.Won = true
			res.Feedback = winFeedback(s.Word)
			res.Word = s.Word
		}
	}
	s.mu.Unlock()
	if won {
		e.ended(s)
	}

	return res, nil
}

// AnswerTurn answers a caller-supplied question in llm-asks mode. It backs
// the paced protocol where the caller relays the questioner's output.
func (e *Engine) AnswerTurn(ctx context.Context, question string) (AskResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return AskResult{}, ErrEmptyInput
	}

	s, err := e.lockCurrent()
	if err != nil {
		return AskResult{}, err
	}
	defer s.mu.Unlock()

	if s.Mode != ModeLLMAsks {
		return AskResult{}, ErrWrongMode
	}
	if s.Paused {
		return AskResult{}, ErrPaused
	}
	if s.QuestionCount() >= MaxQuestions {
		return AskResult{}, ErrMaxQuestions
	}

	answer := e.answerer.Answer(ctx, s.Word, question, s.History())
	s.state.Lock()
	if answer != RejectionAnswer {
		s.Questions = append(s.Questions, QuestionEntry{
			Sequence:   len(s.Questions) + 1,
			Question:   question,
			Answer:     answer,
			AskedByLLM: true,
		})
	}
	count := len(s.Questions)
	s.state.Unlock()

	return AskResult{Question: question, Answer: answer, QuestionCount: count}, nil
}

// GuessTurn makes the final guess on the guesser's behalf in llm-asks mode.
func (e *Engine) GuessTurn(ctx context.Context) (GuessResult, error) {
	s, err := e.lockCurrent()
	if err != nil {
		return GuessResult{}, err
	}

	if s.Mode != ModeLLMAsks {
		s.mu.Unlock()
		return GuessResult{}, ErrWrongMode
	}
	if s.Paused {
		s.mu.Unlock()
		return GuessResult{}, ErrPaused
	}

	guess := e.guesser.Guess(ctx, s.History())
	verdict := e.judge.Judge(ctx, s.Word, guess, s.History())
	e.finish(s, verdict.Correct)
	s.mu.Unlock()
	e.ended(s)

	return GuessResult{
		Guess:    guess,
		Correct:  verdict.Correct,
		Feedback: verdict.Feedback,
		Word:     s.Word,
	}, nil
}

// Stop terminates the current session as a non-win and reveals the word.
func (e *Engine) Stop(ctx context.Context) (string, error) {
	s, err := e.lockCurrent()
	if err != nil {
		return "", err
	}

	e.finish(s, false)
	s.mu.Unlock()
	e.ended(s)
	return s.Word, nil
}

// finish marks the terminal state. Called with the turn lock held.
func (e *Engine) finish(s *Session, won bool) {
	s.state.Lock()
	if s.Paused {
		// Elapsed time stays pause-exclusive for stopped-while-paused games.
		s.StartedAt = s.StartedAt.Add(time.Since(s.PausedAt))
		s.Paused = false
		s.PausedAt = time.Time{}
	}
	s.Active = false
	s.Won = won
	s.EndedAt = time.Now()
	s.state.Unlock()
}

// ended archives the session and fires the persistence hook, outside the
// session lock.
func (e *Engine) ended(s *Session) {
	e.store.End(s.ID)
	if e.onEnd != nil {
		e.onEnd(s)
	}
}
