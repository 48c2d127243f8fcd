package handler

import (
	"context"
	"encoding/json"
	"log"

	"github.com/lib/pq"
	"github.com/twentyq/api/internal/cache"
	"github.com/twentyq/api/internal/game"
	"github.com/twentyq/api/internal/middleware"
	"github.com/twentyq/api/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NewEndHook builds the engine's end-of-session callback: persist the
// record, invalidate the stats cache, bump the completion metric. All
// best effort; a write failure never disturbs the game result.
func NewEndHook(db *gorm.DB, redisCache *cache.RedisCache) func(*game.Session) {
	return func(s *game.Session) {
		middleware.RecordGameCompleted(s.Won)

		if db != nil {
			logJSON, _ := json.Marshal(s.Questions)
			record := model.GameRecord{
				SessionID:       s.ID,
				Word:            s.Word,
				Category:        string(s.Category),
				Difficulty:      string(s.Difficulty),
				Mode:            string(s.Mode),
				QuestionCount:   s.QuestionCount(),
				HintsUsed:       s.HintsUsed,
				Won:             s.Won,
				DurationSeconds: int(s.Elapsed().Seconds()),
				Hints:           pq.StringArray(s.Hints),
				QuestionLog:     datatypes.JSON(logJSON),
			}
			if err := db.Create(&record).Error; err != nil {
				log.Printf("Warning: failed to persist game record %s: %v", s.ID, err)
			}
		}

		if redisCache != nil {
			if err := redisCache.Delete(context.Background(), cache.StatsKey); err != nil {
				log.Printf("Warning: failed to invalidate stats cache: %v", err)
			}
		}
	}
}
