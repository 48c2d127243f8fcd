package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/twentyq/api/internal/auth"
	"github.com/twentyq/api/internal/config"
)

// Mints a debug token for the admin reveal endpoint.
func main() {
	email := flag.String("email", "", "Email to embed in the token (must be in ADMIN_EMAILS)")
	name := flag.String("name", "debug", "Display name to embed in the token")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	token, err := auth.GenerateToken(*email, *name, cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
}
