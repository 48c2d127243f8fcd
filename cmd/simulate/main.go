package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/twentyq/api/internal/config"
	"github.com/twentyq/api/internal/game"
	"github.com/twentyq/api/internal/llm"
	"github.com/twentyq/api/internal/scheduler"
)

// Runs a full LLM-vs-LLM game locally and prints the transcript. Useful
// for tuning prompts without the HTTP layer.
func main() {
	category := flag.String("category", "", "Word category (empty = random)")
	difficulty := flag.String("difficulty", "medium", "Word difficulty")
	interval := flag.Duration("interval", 2*time.Second, "Delay between turns")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	var client llm.Client
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Println("Warning: GEMINI_API_KEY not set, simulation will use fallbacks only")
		} else {
			client = llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		}
	case "ollama":
		client = llm.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel)
	}

	store := game.NewStore()
	engine := game.NewEngine(client, store)

	ctx := context.Background()
	s, err := engine.Start(ctx, game.ModeLLMAsks, game.Difficulty(*difficulty), game.Category(*category))
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}
	log.Printf("Started session %s (category=%s difficulty=%s)", s.ID, s.Category, s.Difficulty)

	autoplay := scheduler.NewAutoPlayer(engine, *interval)
	autoplay.Start(ctx)

	for _, finished := range store.Finished() {
		result := "lost"
		if finished.Won {
			result = "won"
		}
		log.Printf("Game %s: word=%q questions=%d", result, finished.Word, finished.QuestionCount())
		for _, q := range finished.Questions {
			log.Printf("  %2d. Q: %s", q.Sequence, q.Question)
			log.Printf("      A: %s", q.Answer)
		}
	}
}
