package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// AnalyzeUpload godoc
// @Summary      Analyze an uploaded video file
// @Description  Saves the file to the scratch dir, analyzes it from its filename and removes it afterwards
// @Tags         analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        video  formData  file  true  "Video file"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /analyze-upload-free [post]
func (h *Handler) AnalyzeUpload(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze-upload")
	defer span.End()

	file, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "video file required",
		})
		return
	}
	span.SetAttributes(attribute.String("upload.filename", file.Filename))

	// The file lands in the scratch dir only so the request is fully
	// received; analysis reads nothing but the original filename. Removal
	// is best-effort either way.
	scratch := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, scratch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "could not store upload",
		})
		return
	}
	defer os.Remove(scratch)

	rep, meta := h.analysis.AnalyzeUpload(ctx, file.Filename)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"report":   rep,
		"metadata": meta,
	})
}
