package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// GameRecord is the durable row written when a session terminates. The
// question log is kept as JSON for replay/debugging; aggregation only
// needs the scalar columns.
type GameRecord struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID       string         `gorm:"type:uuid;uniqueIndex;not null" json:"sessionId"`
	Word            string         `gorm:"not null" json:"word"`
	Category        string         `gorm:"not null;index" json:"category"`
	Difficulty      string         `gorm:"not null;index" json:"difficulty"`
	Mode            string         `gorm:"not null" json:"mode"`
	QuestionCount   int            `gorm:"not null;default:0" json:"questionCount"`
	HintsUsed       int            `gorm:"not null;default:0" json:"hintsUsed"`
	Won             bool           `gorm:"not null;index" json:"won"`
	DurationSeconds int            `gorm:"not null;default:0" json:"durationSeconds"`
	Hints           pq.StringArray `gorm:"type:text[]" json:"hints"`
	QuestionLog     datatypes.JSON `json:"questionLog"`
	CreatedAt       time.Time      `json:"createdAt"`
}

func (GameRecord) TableName() string {
	return "game_records"
}
