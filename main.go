package main

import (
	"context"
	"log"

	"datadeck/ai"
	"datadeck/app"
	"datadeck/internal/config"
	"datadeck/ui"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] configuration error: %v", err)
	}

	narrative, err := ai.NewGeminiClient(context.Background(), cfg.AI.GeminiKey, cfg.AI.GeminiModel, cfg.AI.Timeout)
	if err != nil {
		log.Fatalf("[main] narrative client error: %v", err)
	}

	service := app.NewPresentationService(narrative)
	server := ui.NewServer(cfg, service)
	if err := server.Run(); err != nil {
		log.Fatalf("[main] server failed: %v", err)
	}
}
