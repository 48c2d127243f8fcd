package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/twentyq/api/internal/game"
	"github.com/twentyq/api/internal/middleware"
)

type GameHandler struct {
	engine *game.Engine
}

func NewGameHandler(engine *game.Engine) *GameHandler {
	return &GameHandler{engine: engine}
}

type StartRequest struct {
	Mode       string `json:"mode" binding:"required"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
}

type QuestionRequest struct {
	Question string `json:"questionText" binding:"required"`
}

type GuessRequest struct {
	Guess string `json:"guessText" binding:"required"`
}

type PauseRequest struct {
	Pause *bool `json:"pause" binding:"required"`
}

// errorStatus maps engine errors onto HTTP status and a stable error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrNoActiveSession):
		return http.StatusNotFound, "NO_ACTIVE_SESSION"
	case errors.Is(err, game.ErrEmptyInput):
		return http.StatusBadRequest, "EMPTY_INPUT"
	case errors.Is(err, game.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, game.ErrMaxQuestions):
		return http.StatusConflict, "MAX_QUESTIONS_REACHED"
	case errors.Is(err, game.ErrPaused):
		return http.StatusConflict, "INVALID_STATE"
	case errors.Is(err, game.ErrInvalidState):
		return http.StatusConflict, "INVALID_STATE"
	case errors.Is(err, game.ErrNoHints):
		return http.StatusConflict, "NO_HINTS_AVAILABLE"
	case errors.Is(err, game.ErrSessionBusy):
		return http.StatusConflict, "SESSION_BUSY"
	case errors.Is(err, game.ErrWrongMode):
		return http.StatusConflict, "WRONG_MODE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func abortWithError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func (h *GameHandler) Start(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode is required", "code": "EMPTY_INPUT"})
		return
	}

	s, err := h.engine.Start(c.Request.Context(), game.Mode(req.Mode), game.Difficulty(req.Difficulty), game.Category(req.Category))
	if err != nil {
		abortWithError(c, err)
		return
	}

	middleware.RecordGameStarted(string(s.Mode), string(s.Difficulty))
	c.JSON(http.StatusCreated, s.Summarize())
}

func (h *GameHandler) Ask(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionText is required", "code": "EMPTY_INPUT"})
		return
	}

	res, err := h.engine.Ask(c.Request.Context(), req.Question)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *GameHandler) Hint(c *gin.Context) {
	res, err := h.engine.Hint(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *GameHandler) Guess(c *gin.Context) {
	var req GuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guessText is required", "code": "EMPTY_INPUT"})
		return
	}

	res, err := h.engine.Guess(c.Request.Context(), req.Guess)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *GameHandler) LLMQuestion(c *gin.Context) {
	res, err := h.engine.QuestionTurn(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *GameHandler) LLMAnswer(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionText is required", "code": "EMPTY_INPUT"})
		return
	}

	res, err := h.engine.AnswerTurn(c.Request.Context(), req.Question)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *GameHandler) LLMGuess(c *gin.Context) {
	res, err := h.engine.GuessTurn(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *GameHandler) Pause(c *gin.Context) {
	var req PauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pause is required", "code": "EMPTY_INPUT"})
		return
	}

	var err error
	if *req.Pause {
		err = h.engine.Pause(c.Request.Context())
	} else {
		err = h.engine.Resume(c.Request.Context())
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paused": *req.Pause})
}

func (h *GameHandler) Stop(c *gin.Context) {
	word, err := h.engine.Stop(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "revealedWord": word})
}

// Current returns the session summary with the secret word withheld.
func (h *GameHandler) Current(c *gin.Context) {
	s := h.engine.Store().Current()
	if s == nil {
		abortWithError(c, game.ErrNoActiveSession)
		return
	}
	c.JSON(http.StatusOK, s.Summarize())
}

// Reveal discloses the secret word of the live session. Admin-gated; this
// is the trusted/debug surface.
func (h *GameHandler) Reveal(c *gin.Context) {
	s := h.engine.Store().Current()
	if s == nil {
		abortWithError(c, game.ErrNoActiveSession)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"word":  s.Word,
		"hints": s.Hints,
	})
}
