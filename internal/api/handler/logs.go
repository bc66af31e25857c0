package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/promptlab-go/internal/repository"
	"go.uber.org/zap"
)

// LogsHandler exposes persisted pipeline run records.
type LogsHandler struct {
	logRepo repository.OptimizeLogRepository
	logger  *zap.Logger
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(logRepo repository.OptimizeLogRepository, logger *zap.Logger) *LogsHandler {
	return &LogsHandler{logRepo: logRepo, logger: logger}
}

// List returns recent optimize logs, newest first.
func (h *LogsHandler) List(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 50)
	offset := parseIntQuery(c, "offset", 0)
	if limit > 500 {
		limit = 500
	}

	logs, total, err := h.logRepo.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list optimize logs", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "failed to list logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":   logs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// Stats returns aggregate counters over the optimize log.
func (h *LogsHandler) Stats(c *gin.Context) {
	stats, err := h.logRepo.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to aggregate optimize logs", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "failed to aggregate logs")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func parseIntQuery(c *gin.Context, key string, defaultVal int) int {
	v := c.Query(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}
