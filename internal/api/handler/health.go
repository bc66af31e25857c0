package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/promptlab-go/internal/service"
	"github.com/user/promptlab-go/internal/version"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	store                *service.Store
	generativeConfigured bool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store *service.Store, generativeConfigured bool) *HealthHandler {
	return &HealthHandler{store: store, generativeConfigured: generativeConfigured}
}

// Health returns the service health status. The catalog is loaded before
// the server starts serving, so an empty store here means degraded.
func (h *HealthHandler) Health(c *gin.Context) {
	status := "healthy"
	if !h.store.Loaded() {
		status = "degraded"
	}

	mode := "fallback"
	if h.generativeConfigured {
		mode = "generative_rag"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"version":  version.Short(),
		"examples": h.store.Len(),
		"mode":     mode,
	})
}
