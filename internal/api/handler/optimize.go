package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/promptlab-go/internal/service"
)

// maxPromptLength bounds accepted prompt bodies; anything longer is a
// client error, not something to silently truncate.
const maxPromptLength = 8000

// OptimizeHandler handles prompt optimization requests.
type OptimizeHandler struct {
	pipeline *service.Pipeline
}

// NewOptimizeHandler creates a new OptimizeHandler.
func NewOptimizeHandler(pipeline *service.Pipeline) *OptimizeHandler {
	return &OptimizeHandler{pipeline: pipeline}
}

// optimizeRequest is the request body for POST /api/optimize.
type optimizeRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// Optimize runs the optimization pipeline for one prompt.
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "prompt is required")
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		errorResponse(c, http.StatusBadRequest, "prompt must not be blank")
		return
	}
	if len(prompt) > maxPromptLength {
		errorResponse(c, http.StatusRequestEntityTooLarge, "prompt exceeds maximum length")
		return
	}

	result := h.pipeline.Process(c.Request.Context(), prompt)
	c.JSON(http.StatusOK, result)
}
