package handler

import (
	"errors"
	"net/http"

	"tradevision/internal/domain"

	"github.com/gin-gonic/gin"
)

// TestGemini godoc
// @Summary      Test the AI provider connection
// @Description  Sends a tiny prompt to the configured provider and reports connectivity
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /test-gemini [get]
func (h *Handler) TestGemini(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.test-gemini")
	defer span.End()

	response, err := h.analysis.TestCompletion(ctx)
	if errors.Is(err, domain.ErrAIDisabled) {
		c.JSON(http.StatusOK, gin.H{
			"status":           "ERROR",
			"gemini_connected": false,
			"error":            "GEMINI_API_KEY not configured",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":           "ERROR",
			"gemini_connected": false,
			"error":            err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "OK",
		"gemini_connected": true,
		"response":         response,
		"quota":            "15 requests per minute",
		"cost":             "FREE",
	})
}
