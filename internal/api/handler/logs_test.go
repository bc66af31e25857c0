//go:build !integration && !e2e
// +build !integration,!e2e

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/promptlab-go/internal/models"
	"github.com/user/promptlab-go/internal/repository"
	"github.com/user/promptlab-go/internal/testutil"
)

func newLogsRouter(t *testing.T, seeded int) *gin.Engine {
	t.Helper()
	logger := testutil.NewTestLogger()
	db := testutil.NewTestDB(t)
	repo := repository.NewOptimizeLogRepository(db, logger)

	for i := 0; i < seeded; i++ {
		_, err := repo.Insert(context.Background(), &models.OptimizeLogEntry{
			RequestID:      fmt.Sprintf("req-%d", i),
			PromptPreview:  "bana python öğret",
			WordCount:      3,
			Intent:         models.IntentTeaching,
			Mode:           models.ModeFallback,
			Model:          "Fallback Optimizer",
			ImprovementPct: 60,
			LatencyMs:      int64(i + 1),
		})
		require.NoError(t, err)
	}

	r := testutil.NewTestRouter()
	h := NewLogsHandler(repo, logger)
	r.GET("/api/logs", h.List)
	r.GET("/api/logs/stats", h.Stats)
	return r
}

func getJSON(t *testing.T, r *gin.Engine, path string) map[string]any {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLogs_List(t *testing.T) {
	r := newLogsRouter(t, 3)

	resp := getJSON(t, r, "/api/logs")
	assert.EqualValues(t, 3, resp["total"])
	assert.EqualValues(t, 50, resp["limit"])

	logs, ok := resp["logs"].([]any)
	require.True(t, ok)
	require.Len(t, logs, 3)
	first := logs[0].(map[string]any)
	assert.Equal(t, "req-2", first["request_id"])
	assert.Equal(t, "fallback", first["mode"])
}

func TestLogs_ListPagination(t *testing.T) {
	r := newLogsRouter(t, 5)

	resp := getJSON(t, r, "/api/logs?limit=2&offset=2")
	assert.EqualValues(t, 5, resp["total"])
	assert.EqualValues(t, 2, resp["limit"])
	assert.EqualValues(t, 2, resp["offset"])

	logs := resp["logs"].([]any)
	require.Len(t, logs, 2)
	assert.Equal(t, "req-2", logs[0].(map[string]any)["request_id"])
}

func TestLogs_ListBadQueryFallsBackToDefaults(t *testing.T) {
	r := newLogsRouter(t, 1)

	resp := getJSON(t, r, "/api/logs?limit=abc&offset=-3")
	assert.EqualValues(t, 50, resp["limit"])
	assert.EqualValues(t, 0, resp["offset"])
	assert.EqualValues(t, 1, resp["total"])
}

func TestLogs_Stats(t *testing.T) {
	r := newLogsRouter(t, 4)

	resp := getJSON(t, r, "/api/logs/stats")
	assert.EqualValues(t, 4, resp["total_requests"])
	assert.EqualValues(t, 4, resp["fallback_count"])
	assert.InDelta(t, 60.0, resp["avg_improvement"].(float64), 1e-9)

	intents, ok := resp["intent_counts"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 4, intents["teaching"])
}

func TestLogs_StatsEmpty(t *testing.T) {
	r := newLogsRouter(t, 0)

	resp := getJSON(t, r, "/api/logs/stats")
	assert.EqualValues(t, 0, resp["total_requests"])
}
