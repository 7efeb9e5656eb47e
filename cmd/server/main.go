package main

import (
	"log"

	config "biosecure-api/configs"
	"biosecure-api/pkg/app"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.LoadConfig()
	r := app.New(cfg)

	log.Printf("Starting Farm Biosecurity API on :%s (model: %s, report validation: %s)",
		cfg.Port, cfg.GeminiModel, cfg.ReportValidation)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
