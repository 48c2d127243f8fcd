package database

import (
	"github.com/twentyq/api/internal/config"
	"github.com/twentyq/api/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.GameRecord{}); err != nil {
		return err
	}

	db.Exec("CREATE INDEX IF NOT EXISTS idx_game_records_stats ON game_records(category, difficulty, won)")

	return nil
}
