package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/twentyq/api/internal/game"
)

// AutoPlayer drives llm-asks sessions turn by turn on a timer. A tick only
// dispatches a turn when the previous one has completed: the engine's
// per-session lock reports SessionBusy and the tick is skipped. Stop is
// synchronous with respect to dispatch; a turn already in flight inside
// the engine completes and its result is applied.
type AutoPlayer struct {
	engine   *game.Engine
	interval time.Duration
	running  bool
	turns    int
	mu       sync.Mutex
	stopChan chan struct{}
}

func NewAutoPlayer(engine *game.Engine, interval time.Duration) *AutoPlayer {
	if interval == 0 {
		interval = 5 * time.Second
	}
	return &AutoPlayer{
		engine:   engine,
		interval: interval,
	}
}

// Start begins the turn loop. It returns immediately if already running.
func (a *AutoPlayer) Start(ctx context.Context) {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return
	}
	a.running = true
	a.stopChan = make(chan struct{})
	stop := a.stopChan
	a.mu.Unlock()

	log.Printf("[Autoplay] Starting with interval %v", a.interval)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[Autoplay] Context cancelled, stopping")
			a.markStopped()
			return
		case <-stop:
			log.Println("[Autoplay] Stop signal received")
			return
		case <-ticker.C:
			if done := a.playTurn(ctx); done {
				log.Println("[Autoplay] Session finished")
				a.Stop()
				return
			}
		}
	}
}

// Stop halts the loop before any further turn is dispatched.
func (a *AutoPlayer) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		close(a.stopChan)
		a.running = false
		log.Println("[Autoplay] Stopped")
	}
}

func (a *AutoPlayer) markStopped() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.running = false
}

// playTurn runs one llm-asks turn. The return value reports whether the
// session reached a terminal state and the loop should end.
func (a *AutoPlayer) playTurn(ctx context.Context) bool {
	res, err := a.engine.QuestionTurn(ctx)
	switch {
	case errors.Is(err, game.ErrSessionBusy):
		// Previous turn still outstanding; try again next tick.
		return false
	case errors.Is(err, game.ErrPaused):
		return false
	case errors.Is(err, game.ErrNoActiveSession):
		return true
	case errors.Is(err, game.ErrMaxQuestions):
		return a.guess(ctx)
	case err != nil:
		log.Printf("[Autoplay] Turn failed: %v", err)
		return false
	}

	a.mu.Lock()
	a.turns++
	a.mu.Unlock()

	if res.Won {
		log.Printf("[Autoplay] Early win after %d questions", res.QuestionCount)
		return true
	}
	if res.Rejected {
		log.Printf("[Autoplay] Question rejected, retrying next tick")
		return false
	}
	if res.ReadyToGuess {
		log.Printf("[Autoplay] Ready to guess after %d questions", res.QuestionCount)
		return a.guess(ctx)
	}
	return false
}

func (a *AutoPlayer) guess(ctx context.Context) bool {
	res, err := a.engine.GuessTurn(ctx)
	if err != nil {
		if errors.Is(err, game.ErrNoActiveSession) {
			return true
		}
		log.Printf("[Autoplay] Guess turn failed: %v", err)
		return false
	}

	if res.Correct {
		log.Printf("[Autoplay] Guessed %q correctly", res.Guess)
	} else {
		log.Printf("[Autoplay] Guessed %q, the word was %q", res.Guess, res.Word)
	}
	return true
}

// GetStatus returns current autoplay status.
func (a *AutoPlayer) GetStatus() map[string]interface{} {
	a.mu.Lock()
	defer a.mu.Unlock()

	return map[string]interface{}{
		"running":  a.running,
		"turns":    a.turns,
		"interval": a.interval.String(),
	}
}
