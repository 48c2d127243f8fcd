package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twentyq/api/internal/cache"
	"github.com/twentyq/api/internal/config"
	"github.com/twentyq/api/internal/database"
	"github.com/twentyq/api/internal/game"
	"github.com/twentyq/api/internal/handler"
	"github.com/twentyq/api/internal/llm"
	"github.com/twentyq/api/internal/middleware"
	"github.com/twentyq/api/internal/scheduler"
	"gorm.io/gorm"
)

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := config.Load()

	// Initialize database (optional; statistics fall back to the
	// in-memory archive without it)
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			log.Printf("Warning: failed to connect to database: %v", err)
			db = nil
		} else if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	} else {
		log.Println("Warning: DATABASE_URL not set, game records will not be persisted")
	}

	// Initialize Redis cache
	var redisCache *cache.RedisCache
	if cfg.RedisURL != "" {
		var err error
		redisCache, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: failed to connect to Redis: %v", err)
			// Continue without Redis cache (fail-open)
		}
	}

	// Initialize LLM client based on provider. A missing backend is not
	// fatal: every game operation has a deterministic fallback.
	var client llm.Client
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Println("Warning: GEMINI_API_KEY not set, running on fallback behavior only")
		} else {
			client = llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
			log.Printf("Using Gemini API with model: %s", cfg.GeminiModel)
		}
	case "ollama":
		client = llm.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel)
		log.Printf("Using Ollama at %s with model: %s", cfg.OllamaURL, cfg.OllamaModel)
	default:
		log.Printf("Warning: unknown LLM provider %q, running on fallback behavior only", cfg.LLMProvider)
	}
	if client != nil {
		client = middleware.InstrumentLLM(client)
	}

	// Game engine and stores
	store := game.NewStore()
	engine := game.NewEngine(client, store)
	engine.SetEndHook(handler.NewEndHook(db, redisCache))

	autoplay := scheduler.NewAutoPlayer(engine, cfg.AutoplayInterval)

	// Initialize handlers
	gameHandler := handler.NewGameHandler(engine)
	statsHandler := handler.NewStatsHandler(store, db, redisCache)
	exportHandler := handler.NewExportHandler(db)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Prometheus metrics middleware
	r.Use(middleware.MetricsMiddleware())

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Autoplay control
	r.GET("/autoplay/status", func(c *gin.Context) {
		c.JSON(200, autoplay.GetStatus())
	})
	r.POST("/autoplay/start", func(c *gin.Context) {
		go autoplay.Start(context.Background())
		c.JSON(200, gin.H{"started": true})
	})
	r.POST("/autoplay/stop", func(c *gin.Context) {
		autoplay.Stop()
		c.JSON(200, gin.H{"stopped": true})
	})

	// API routes
	api := r.Group("/api")
	{
		// Game
		api.POST("/game/start", gameHandler.Start)
		api.POST("/game/question", gameHandler.Ask)
		api.POST("/game/hint", gameHandler.Hint)
		api.POST("/game/guess", gameHandler.Guess)
		api.POST("/game/pause", gameHandler.Pause)
		api.POST("/game/stop", gameHandler.Stop)
		api.GET("/game/current", gameHandler.Current)

		// LLM-vs-LLM turns
		api.POST("/game/llm/question", gameHandler.LLMQuestion)
		api.POST("/game/llm/answer", gameHandler.LLMAnswer)
		api.POST("/game/llm/guess", gameHandler.LLMGuess)

		// Statistics
		api.GET("/stats", statsHandler.Get)
		api.GET("/game/history", statsHandler.History)
		api.GET("/game/history/:sessionId/export", exportHandler.Export)

		// Debug surface: reveals the live secret word
		admin := api.Group("/", middleware.AdminMiddleware(cfg.JWTSecret, cfg.AdminEmails))
		admin.GET("/game/current/reveal", gameHandler.Reveal)
	}

	log.Printf("API server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
