package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/twentyq/api/internal/cache"
	"github.com/twentyq/api/internal/game"
	"github.com/twentyq/api/internal/model"
	"gorm.io/gorm"
)

type StatsHandler struct {
	store *game.Store
	db    *gorm.DB
	cache *cache.RedisCache
}

func NewStatsHandler(store *game.Store, db *gorm.DB, redisCache *cache.RedisCache) *StatsHandler {
	return &StatsHandler{store: store, db: db, cache: redisCache}
}

type StatsResponse struct {
	CurrentSession *game.Summary   `json:"currentSessionSummary,omitempty"`
	Aggregate      game.Statistics `json:"aggregateStatistics"`
}

// Get aggregates terminated sessions. The database is the source of truth
// when configured; otherwise the in-memory archive serves the same shape.
// The aggregate half is cached in Redis and invalidated on game end.
func (h *StatsHandler) Get(c *gin.Context) {
	res := StatsResponse{}
	if s := h.store.Current(); s != nil {
		summary := s.Summarize()
		res.CurrentSession = &summary
	}

	if h.cache != nil {
		if cached, err := h.cache.Get(c.Request.Context(), cache.StatsKey); err == nil {
			var stats game.Statistics
			if err := json.Unmarshal(cached, &stats); err == nil {
				res.Aggregate = stats
				c.JSON(http.StatusOK, res)
				return
			}
		}
	}

	res.Aggregate = game.Aggregate(h.outcomes())

	if h.cache != nil {
		if statsJSON, err := json.Marshal(res.Aggregate); err == nil {
			h.cache.Set(c.Request.Context(), cache.StatsKey, statsJSON)
		}
	}

	c.JSON(http.StatusOK, res)
}

func (h *StatsHandler) outcomes() []game.Outcome {
	if h.db != nil {
		var records []model.GameRecord
		if err := h.db.Find(&records).Error; err == nil {
			outcomes := make([]game.Outcome, len(records))
			for i, r := range records {
				outcomes[i] = game.Outcome{
					Category:      game.Category(r.Category),
					Difficulty:    game.Difficulty(r.Difficulty),
					QuestionCount: r.QuestionCount,
					Won:           r.Won,
				}
			}
			return outcomes
		} else {
			log.Printf("Warning: failed to load game records, using in-memory archive: %v", err)
		}
	}

	finished := h.store.Finished()
	outcomes := make([]game.Outcome, len(finished))
	for i, s := range finished {
		outcomes[i] = s.Outcome()
	}
	return outcomes
}

// History lists recent completed games from the database.
func (h *StatsHandler) History(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, []model.GameRecord{})
		return
	}

	var records []model.GameRecord
	if err := h.db.Order("created_at DESC").Limit(50).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load game history"})
		return
	}
	c.JSON(http.StatusOK, records)
}
