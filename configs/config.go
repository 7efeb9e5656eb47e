package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration
type Config struct {
	Port              string
	Environment       string
	APIKey            string
	AdminUsername     string
	AdminPassword     string
	GeminiAPIKey      string
	GeminiModel       string
	AdvisorPromptPath string
	ReportValidation  string
	ReportHistorySize int
	SessionLimit      int
	AllowedOrigins    []string
}

// Report validation modes. Lenient skips the enum and 0-100 range checks only;
// overallScore must still be a whole number within int32 in either mode.
const (
	ValidationStrict  = "strict"
	ValidationLenient = "lenient"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		APIKey:            getEnv("API_KEY", ""),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		AdvisorPromptPath: getEnv("ADVISOR_PROMPT_PATH", "configs/advisor_prompt.yaml"),
		ReportValidation:  normalizeValidation(getEnv("REPORT_VALIDATION", ValidationStrict)),
		ReportHistorySize: getEnvInt("REPORT_HISTORY_SIZE", 50),
		SessionLimit:      getEnvInt("CONVERSATION_LIMIT", 1000),
		AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// StrictValidation reports whether generated reports must satisfy the enum and score range checks.
func (c *Config) StrictValidation() bool {
	return c.ReportValidation == ValidationStrict
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func normalizeValidation(mode string) string {
	if strings.EqualFold(strings.TrimSpace(mode), ValidationLenient) {
		return ValidationLenient
	}
	return ValidationStrict
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
