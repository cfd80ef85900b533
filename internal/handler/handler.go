package handler

import (
	"tradevision/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer    trace.Tracer
	analysis  *service.AnalysisService
	uploadDir string
}

func New(tracer trace.Tracer, analysis *service.AnalysisService, uploadDir string) *Handler {
	return &Handler{
		tracer:    tracer,
		analysis:  analysis,
		uploadDir: uploadDir,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/analyze-youtube-free", h.AnalyzeYouTube)
	r.POST("/analyze-upload-free", h.AnalyzeUpload)
	r.GET("/test-gemini", h.TestGemini)
	r.POST("/video-metadata", h.VideoMetadata)
}
