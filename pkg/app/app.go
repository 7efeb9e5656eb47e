package app

import (
	"log"
	"net/http"

	config "biosecure-api/configs"
	"biosecure-api/pkg/gemini"
	"biosecure-api/pkg/handlers"
	"biosecure-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New はcfgのGemini設定でAPIルーターを構築します。
func New(cfg *config.Config) *gin.Engine {
	if cfg.GeminiAPIKey == "" {
		log.Printf("Warning: GEMINI_API_KEY is not set; AI requests will fail until it is configured")
	}
	return NewRouter(cfg, gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel))
}

// NewRouter はgeneratorを使ってAPIルーターを構築します。
func NewRouter(cfg *config.Config, generator services.TextGenerator) *gin.Engine {
	r := gin.Default()

	persona := config.AdvisorPrompt(cfg.AdvisorPromptPath)
	monitoringService := services.NewMonitoringService()
	advisorService := services.NewAdvisorService(generator, persona.BuildSystemInstruction(), cfg.StrictValidation())

	aiHandler := handlers.NewAIHandler(
		advisorService,
		services.NewConversationService(cfg.SessionLimit),
		services.NewReportStore(cfg.ReportHistorySize),
		cfg.GeminiModel,
	)
	catalogHandler := handlers.NewCatalogHandler(services.NewGuidelineService())
	adminHandler := handlers.NewAdminHandler(cfg)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	r.Use(monitoringService.LoggingMiddleware())
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	r.GET("/health", adminHandler.HealthCheck)

	v1 := r.Group("/api/v1")
	v1.GET("/hello", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello from the Farm Biosecurity API!"})
	})

	secured := v1.Group("")
	secured.Use(handlers.APIKeyAuth(cfg.APIKey))
	{
		admin := secured.Group("/admin")
		{
			admin.GET("/health-status", adminHandler.GetHealthStatus)
			admin.POST("/maintenance/start", adminHandler.StartMaintenance)
			admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
		}

		secured.GET("/monitoring/logs", monitoringHandler.GetLogs)

		secured.GET("/guidelines", catalogHandler.GetGuidelines)
		secured.GET("/checklist", catalogHandler.GetChecklist)
		secured.POST("/checklist/:id/toggle", catalogHandler.ToggleChecklistItem)

		ai := secured.Group("/ai")
		{
			ai.POST("/ask", aiHandler.AskExpert)
			ai.GET("/conversations/:id", aiHandler.GetConversation)
			ai.POST("/report", aiHandler.GenerateReport)
			ai.GET("/reports/:id", aiHandler.GetReport)
			ai.GET("/reports/:id/export", aiHandler.ExportReport)
		}
	}

	return r
}

// corsMiddleware は許可オリジンが未設定の場合、すべてのオリジンを許可します。
func corsMiddleware(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AddAllowHeaders("X-API-KEY")
	return cors.New(corsConfig)
}
