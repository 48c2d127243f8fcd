package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/twentyq/api/internal/cache"
	"github.com/twentyq/api/internal/config"
)

// Drops the cached statistics aggregate so the next stats request
// recomputes from the database. Run after manual record edits.
func main() {
	dryRun := flag.Bool("dry-run", false, "Show what would be flushed without actually flushing")
	flag.Parse()

	startTime := time.Now()
	log.Println("Starting cache flush...")

	godotenv.Load()
	cfg := config.Load()

	redisCache, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	ctx := context.Background()

	cached, err := redisCache.Get(ctx, cache.StatsKey)
	if err != nil {
		log.Printf("No cached aggregate found (%v), nothing to flush", err)
		return
	}

	if *dryRun {
		log.Printf("[DRY RUN] Would delete %s (%d bytes)", cache.StatsKey, len(cached))
		return
	}

	if err := redisCache.Delete(ctx, cache.StatsKey); err != nil {
		log.Fatalf("Failed to delete %s: %v", cache.StatsKey, err)
	}

	log.Printf("Cache flush complete in %v", time.Since(startTime))
}
