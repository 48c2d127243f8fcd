package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/twentyq/api/internal/config"
	"github.com/twentyq/api/internal/game"
	"github.com/twentyq/api/internal/model"
	"github.com/twentyq/api/internal/validator"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Issue is one consistency problem found in a stored game record.
type Issue struct {
	SessionID string `json:"sessionId"`
	Word      string `json:"word"`
	Type      string `json:"type"`
	Details   string `json:"details"`
}

func main() {
	workers := flag.Int("workers", 10, "Number of parallel workers")
	checkDict := flag.Bool("dict", false, "Also verify words against the dictionary API")
	outputFile := flag.String("output", "audit_results.json", "Output file for results")
	flag.Parse()

	godotenv.Load()
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var total int64
	db.Model(&model.GameRecord{}).Count(&total)
	fmt.Printf("Auditing %d game records with %d workers...\n", total, *workers)

	recordChan := make(chan model.GameRecord, *workers*10)
	issueChan := make(chan Issue, 1000)

	var processed int64
	var wg sync.WaitGroup

	dict := validator.NewDictionaryChecker()

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range recordChan {
				for _, issue := range auditRecord(record, *checkDict, dict) {
					issueChan <- issue
				}
				if n := atomic.AddInt64(&processed, 1); n%500 == 0 {
					fmt.Printf("  processed %d/%d\n", n, total)
				}
			}
		}()
	}

	var issues []Issue
	var collectWg sync.WaitGroup
	collectWg.Add(1)
	go func() {
		defer collectWg.Done()
		for issue := range issueChan {
			issues = append(issues, issue)
		}
	}()

	const batchSize = 200
	var records []model.GameRecord
	result := db.FindInBatches(&records, batchSize, func(tx *gorm.DB, batch int) error {
		for _, r := range records {
			recordChan <- r
		}
		return nil
	})
	if result.Error != nil {
		log.Fatalf("Failed to scan records: %v", result.Error)
	}

	close(recordChan)
	wg.Wait()
	close(issueChan)
	collectWg.Wait()

	fmt.Printf("Audit complete: %d records, %d issues\n", processed, len(issues))

	data, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal results: %v", err)
	}
	if err := os.WriteFile(*outputFile, data, 0644); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}
	fmt.Printf("Results written to %s\n", *outputFile)
}

func auditRecord(record model.GameRecord, checkDict bool, dict *validator.DictionaryChecker) []Issue {
	var issues []Issue
	add := func(kind, details string) {
		issues = append(issues, Issue{
			SessionID: record.SessionID,
			Word:      record.Word,
			Type:      kind,
			Details:   details,
		})
	}

	if err := validator.CheckPlayable(record.Word); err != nil {
		add("unplayable_word", err.Error())
	}
	if record.QuestionCount < 0 || record.QuestionCount > game.MaxQuestions {
		add("question_count_range", fmt.Sprintf("count %d outside 0..%d", record.QuestionCount, game.MaxQuestions))
	}
	if record.HintsUsed < 0 || record.HintsUsed > len(record.Hints) {
		add("hints_used_range", fmt.Sprintf("used %d of %d hints", record.HintsUsed, len(record.Hints)))
	}
	if record.DurationSeconds < 0 {
		add("negative_duration", fmt.Sprintf("%d seconds", record.DurationSeconds))
	}

	if len(record.QuestionLog) > 0 {
		var entries []game.QuestionEntry
		if err := json.Unmarshal(record.QuestionLog, &entries); err != nil {
			add("bad_question_log", err.Error())
		} else if len(entries) != record.QuestionCount {
			add("question_log_mismatch", fmt.Sprintf("log has %d entries, count is %d", len(entries), record.QuestionCount))
		}
	}

	if checkDict && !dict.IsKnownWord(record.Word) {
		add("unknown_word", "not found in dictionary")
	}

	return issues
}
