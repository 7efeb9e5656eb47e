package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"biosecure-api/pkg/models"
	"biosecure-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// AIHandler はアドバイザーチャットと監査レポートのハンドラです。
type AIHandler struct {
	advisor       *services.AdvisorService
	conversations *services.ConversationService
	reports       *services.ReportStore
	model         string
	now           func() time.Time
}

// NewAIHandler は新しいAIHandlerを生成します。
func NewAIHandler(advisor *services.AdvisorService, conversations *services.ConversationService, reports *services.ReportStore, model string) *AIHandler {
	return &AIHandler{
		advisor:       advisor,
		conversations: conversations,
		reports:       reports,
		model:         model,
		now:           time.Now,
	}
}

// AskExpert はバイオセキュリティに関する質問に回答します。
// モデルが失敗した場合も200でフォールバック応答を返します。
func (h *AIHandler) AskExpert(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body: " + err.Error()})
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "A question is required."})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = h.conversations.NewSession()
	} else if !h.conversations.Exists(sessionID) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Unknown or expired session. Start a new conversation."})
		return
	}
	if _, err := h.conversations.Append(sessionID, models.RoleUser, question); err != nil {
		log.Printf("failed to record user message: %v", err)
	}

	reply := h.advisor.AskExpert(c.Request.Context(), question)

	if _, err := h.conversations.Append(sessionID, models.RoleAdvisor, reply); err != nil {
		log.Printf("failed to record advisor reply: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": models.AskResponse{
			Reply:     reply,
			SessionID: sessionID,
			Timestamp: h.now().Format(time.RFC3339),
			Model:     h.model,
		},
	})
}

// GetConversation はセッションの会話履歴を返します。
func (h *AIHandler) GetConversation(c *gin.Context) {
	history, err := h.conversations.History(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": history})
}

// GenerateReport は送信された家畜データの監査レポートを生成します。
func (h *AIHandler) GenerateReport(c *gin.Context) {
	var snapshot models.LivestockSnapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid livestock data: " + err.Error()})
		return
	}

	report, err := h.advisor.GenerateReport(c.Request.Context(), snapshot)
	if err != nil {
		var violation *services.SchemaViolationError
		if errors.As(err, &violation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"error":   "The AI returned an invalid report. Please try again.",
				"field":   violation.Field,
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "Failed to generate the report. Please try again.",
		})
		return
	}

	env := h.reports.Save(snapshot, *report, h.now())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": env})
}

// GetReport は生成済みのレポートを返します。
func (h *AIHandler) GetReport(c *gin.Context) {
	env, ok := h.reports.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": env})
}

// ExportReport は生成済みのレポートをxlsxファイルとして返します。
func (h *AIHandler) ExportReport(c *gin.Context) {
	env, ok := h.reports.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "report not found"})
		return
	}

	f, err := services.ExportReportXLSX(env)
	if err != nil {
		log.Printf("report export failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to export the report."})
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+services.ReportFileName(env)+`"`)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("failed to write report workbook: %v", err)
	}
}
