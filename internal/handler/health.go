package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const version = "3.0.0-real-content"

var features = []string{
	"Real content extraction",
	"YouTube metadata analysis",
	"Intelligent asset detection",
	"Context-aware analysis",
	"Specific video insights",
}

// Health godoc
// @Summary      Service health check
// @Description  Returns service status, version and feature list
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "OK",
		"message":  "TradeVision AI backend running!",
		"version":  version,
		"features": features,
	})
}
