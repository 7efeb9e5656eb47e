package handlers

import (
	"errors"
	"net/http"

	"biosecure-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// CatalogHandler はガイドライン一覧と日次チェックリストのハンドラです。
type CatalogHandler struct {
	service *services.GuidelineService
}

// NewCatalogHandler は新しいCatalogHandlerを生成します。
func NewCatalogHandler(service *services.GuidelineService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// GetGuidelines はクエリパラメータ q と category でガイドラインを絞り込みます。
func (h *CatalogHandler) GetGuidelines(c *gin.Context) {
	guidelines := h.service.Search(c.Query("q"), c.DefaultQuery("category", "All"))
	c.JSON(http.StatusOK, gin.H{"success": true, "data": guidelines, "count": len(guidelines)})
}

// GetChecklist はチェックリストと本日の進捗を返します。
func (h *CatalogHandler) GetChecklist(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     h.service.Checklist(),
		"progress": h.service.ChecklistProgress(),
	})
}

// ToggleChecklistItem はタスクの完了状態を切り替えます。
func (h *CatalogHandler) ToggleChecklistItem(c *gin.Context) {
	item, err := h.service.ToggleChecklistItem(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrChecklistItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     item,
		"progress": h.service.ChecklistProgress(),
	})
}
