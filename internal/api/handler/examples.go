package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/promptlab-go/internal/models"
	"github.com/user/promptlab-go/internal/repository"
	"github.com/user/promptlab-go/internal/service"
	"go.uber.org/zap"
)

// ExamplesHandler exposes the example catalog.
type ExamplesHandler struct {
	store       *service.Store
	exampleRepo repository.ExampleRepository
	logger      *zap.Logger
}

// NewExamplesHandler creates a new ExamplesHandler.
func NewExamplesHandler(store *service.Store, exampleRepo repository.ExampleRepository, logger *zap.Logger) *ExamplesHandler {
	return &ExamplesHandler{store: store, exampleRepo: exampleRepo, logger: logger}
}

// List returns the catalog in order.
func (h *ExamplesHandler) List(c *gin.Context) {
	examples := h.store.All()
	c.JSON(http.StatusOK, gin.H{
		"examples": examples,
		"count":    len(examples),
	})
}

// replaceRequest is the request body for PUT /api/examples.
type replaceRequest struct {
	Examples []models.ExamplePrompt `json:"examples" binding:"required"`
}

// Replace swaps the whole catalog: database first, then the in-memory
// store with its indexes. All-or-nothing; a failed store rebuild leaves
// the previous catalog serving.
func (h *ExamplesHandler) Replace(c *gin.Context) {
	var req replaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "examples are required")
		return
	}
	if len(req.Examples) == 0 {
		errorResponse(c, http.StatusBadRequest, "catalog must not be empty")
		return
	}
	for i, e := range req.Examples {
		if e.Text == "" {
			errorResponse(c, http.StatusBadRequest, "example text must not be empty")
			return
		}
		if e.Category == "" {
			req.Examples[i].Category = "general"
		}
	}

	ctx := c.Request.Context()
	if err := h.exampleRepo.ReplaceAll(ctx, req.Examples); err != nil {
		h.logger.Error("catalog replace failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "failed to store catalog")
		return
	}
	if err := h.store.Load(ctx, req.Examples); err != nil {
		h.logger.Error("catalog index rebuild failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "failed to rebuild search index")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(req.Examples)})
}
