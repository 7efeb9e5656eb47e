package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth はX-API-KEYヘッダーを検証するミドルウェアです。apiKeyが空の場合は検証しません。
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-API-KEY") != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
