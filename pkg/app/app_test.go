package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	config "biosecure-api/configs"
	"biosecure-api/pkg/gemini"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGenerator struct {
	requests []gemini.GenerateRequest
}

func (g *recordingGenerator) Generate(_ context.Context, req gemini.GenerateRequest) (string, error) {
	g.requests = append(g.requests, req)
	return "Rotate disinfectants monthly.", nil
}

func testConfig() *config.Config {
	return &config.Config{
		APIKey:            "secret-key",
		AdminUsername:     "admin",
		AdminPassword:     "pw",
		GeminiModel:       "gemini-test",
		AdvisorPromptPath: "does-not-exist.yaml",
		ReportValidation:  config.ValidationStrict,
		ReportHistorySize: 5,
	}
}

func serve(r http.Handler, method, path, body, apiKey string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-KEY", apiKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterPublicRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(testConfig(), &recordingGenerator{})

	assert.Equal(t, http.StatusOK, serve(r, "GET", "/health", "", "").Code)

	w := serve(r, "GET", "/api/v1/hello", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Farm Biosecurity API")
}

func TestRouterRequiresAPIKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(testConfig(), &recordingGenerator{})

	assert.Equal(t, http.StatusUnauthorized, serve(r, "GET", "/api/v1/guidelines", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "GET", "/api/v1/guidelines", "", "wrong").Code)
	assert.Equal(t, http.StatusOK, serve(r, "GET", "/api/v1/guidelines", "", "secret-key").Code)
}

func TestRouterAskUsesPersona(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gen := &recordingGenerator{}
	r := NewRouter(testConfig(), gen)

	w := serve(r, "POST", "/api/v1/ai/ask", `{"question":"How often should I disinfect?"}`, "secret-key")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rotate disinfectants monthly.")

	require.Len(t, gen.requests, 1)
	assert.Equal(t, config.DefaultAdvisorPrompt().BuildSystemInstruction(), gen.requests[0].SystemInstruction)
}

func TestRouterMonitoringCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(testConfig(), &recordingGenerator{})

	serve(r, "GET", "/api/v1/checklist", "", "secret-key")
	serve(r, "GET", "/api/v1/checklist", "", "secret-key")

	w := serve(r, "GET", "/api/v1/monitoring/logs?period=1h", "", "secret-key")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/api/v1/checklist":2`)
}

func TestCORSAllowsAPIKeyHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.AllowedOrigins = []string{"http://localhost:5173"}
	r := NewRouter(cfg, &recordingGenerator{})

	req, _ := http.NewRequest("OPTIONS", "/api/v1/ai/ask", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "X-API-KEY")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
