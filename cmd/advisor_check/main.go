package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"

	config "biosecure-api/configs"
	"biosecure-api/pkg/gemini"
	"biosecure-api/pkg/models"
	"biosecure-api/pkg/services"

	"github.com/joho/godotenv"
)

// advisor_check はGeminiにチャットと監査レポートのリクエストを1回ずつ送信し、結果を表示します。
// 設定したAPIキーとモデルの疎通確認用です。
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.LoadConfig()
	if cfg.GeminiAPIKey == "" {
		log.Fatal("FATAL: GEMINI_API_KEY (or GOOGLE_API_KEY) is not set.")
	}

	client := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	persona := config.AdvisorPrompt(cfg.AdvisorPromptPath)
	advisor := services.NewAdvisorService(client, persona.BuildSystemInstruction(), cfg.StrictValidation())
	ctx := context.Background()

	log.Printf("INFO: model=%s validation=%s", cfg.GeminiModel, cfg.ReportValidation)

	reply := advisor.AskExpert(ctx, "What are the first three biosecurity steps for a new pig unit?")
	log.Println("--- advisor reply ---")
	log.Println(reply)
	if reply == services.AdvisorFallbackReply {
		log.Println("ERROR: chat request failed; see the log above for the cause.")
	}

	snapshot := models.LivestockSnapshot{
		Pigs: models.AnimalGroup{Count: 450},
		Hens: models.AnimalGroup{Count: 1200, LastVaccination: "2023-01-01", HealthNote: "lethargy observed"},
	}
	report, err := advisor.GenerateReport(ctx, snapshot)
	if err != nil {
		var violation *services.SchemaViolationError
		if errors.As(err, &violation) {
			log.Fatalf("ERROR: report rejected: %v", violation)
		}
		log.Fatalf("ERROR: report generation failed: %v", err)
	}

	log.Println("--- audit report ---")
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatalf("ERROR: failed to print report: %v", err)
	}
	log.Println("SUCCESS: both requests completed.")
}
