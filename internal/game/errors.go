package game

import "errors"

var (
	// ErrNoActiveSession: the operation needs a current session that exists
	// and has not terminated.
	ErrNoActiveSession = errors.New("no active game session")

	// ErrEmptyInput: question or guess text was empty after trimming.
	ErrEmptyInput = errors.New("input is empty")

	// ErrValidation: malformed start parameters, rejected before any LLM
	// call or state change.
	ErrValidation = errors.New("invalid input")

	// ErrMaxQuestions: the 20-question budget is exhausted; only a final
	// guess or stop is permitted.
	ErrMaxQuestions = errors.New("maximum questions reached")

	// ErrInvalidState: wrong mode for the operation, or pause/resume called
	// when the session is already in that state.
	ErrInvalidState = errors.New("invalid session state")

	// ErrPaused: question and guess operations are gated while paused.
	// Hints remain available.
	ErrPaused = errors.New("session is paused")

	// ErrNoHints: the hint pool is exhausted or none were configured.
	ErrNoHints = errors.New("no hints available")

	// ErrSessionBusy: another mutating call (usually an LLM turn) holds the
	// session; the caller should retry after it completes.
	ErrSessionBusy = errors.New("session busy with another turn")

	// ErrWrongMode: the operation belongs to the other play mode.
	ErrWrongMode = errors.New("operation not allowed in this mode")
)
