//go:build !integration && !e2e
// +build !integration,!e2e

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/promptlab-go/internal/service"
	"github.com/user/promptlab-go/internal/testutil"
)

func getHealth(t *testing.T, store *service.Store, generativeConfigured bool) map[string]any {
	t.Helper()
	r := testutil.NewTestRouter()
	r.GET("/api/health", NewHealthHandler(store, generativeConfigured).Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth_Healthy(t *testing.T) {
	store := service.NewStore(nil, 0, testutil.NewTestLogger())
	require.NoError(t, store.Load(context.Background(), testutil.SampleCatalog()))

	resp := getHealth(t, store, true)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "generative_rag", resp["mode"])
	assert.EqualValues(t, 3, resp["examples"])
	assert.NotEmpty(t, resp["version"])
}

func TestHealth_DegradedWithoutCatalog(t *testing.T) {
	store := service.NewStore(nil, 0, testutil.NewTestLogger())

	resp := getHealth(t, store, false)
	assert.Equal(t, "degraded", resp["status"])
	assert.Equal(t, "fallback", resp["mode"])
	assert.EqualValues(t, 0, resp["examples"])
}
