package handler

import (
	"net/http"
	"strings"

	"tradevision/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type analyzeRequest struct {
	URL string `json:"url"`
}

// AnalyzeYouTube godoc
// @Summary      Analyze a YouTube trading video
// @Description  Builds a trade report for the video. Provider and parse failures are absorbed into a fallback report; only URL validation surfaces 400.
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body  analyzeRequest  true  "Video URL"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /analyze-youtube-free [post]
func (h *Handler) AnalyzeYouTube(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze-youtube")
	defer span.End()

	var req analyzeRequest
	// Body binding errors collapse into the same missing-url answer.
	_ = c.ShouldBindJSON(&req)

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   domain.ErrURLRequired.Error(),
		})
		return
	}
	if !h.analysis.ValidateURL(req.URL) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   domain.ErrInvalidURL.Error(),
		})
		return
	}
	span.SetAttributes(attribute.String("video.url", req.URL))

	rep, meta := h.analysis.AnalyzeURL(ctx, req.URL)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"report":   rep,
		"metadata": meta,
	})
}

// VideoMetadata godoc
// @Summary      Fetch video metadata
// @Description  Returns the raw metadata the analysis pipeline would use
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body  analyzeRequest  true  "Video URL"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /video-metadata [post]
func (h *Handler) VideoMetadata(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.video-metadata")
	defer span.End()

	var req analyzeRequest
	_ = c.ShouldBindJSON(&req)

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   domain.ErrURLRequired.Error(),
		})
		return
	}
	if !h.analysis.ValidateURL(req.URL) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   domain.ErrInvalidURL.Error(),
		})
		return
	}

	vctx, err := h.analysis.FetchMetadata(ctx, req.URL)
	if err != nil {
		// This endpoint reports the failure instead of fabricating data,
		// but keeps the fail-open 200 contract.
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   "metadata fetch failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"metadata": vctx,
	})
}
