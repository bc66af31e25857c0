//go:build !integration && !e2e
// +build !integration,!e2e

package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/promptlab-go/internal/config"
	"github.com/user/promptlab-go/internal/models"
	"github.com/user/promptlab-go/internal/testutil"
)

func generationConfig(baseURL string) config.GenerationConfig {
	return config.GenerationConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "test-model",
		Temperature:    0.7,
		TopP:           0.9,
		MaxTokens:      1024,
		TimeoutSeconds: 5,
	}
}

func chatResponse(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
}

func TestGenerativeRewriter_Success(t *testing.T) {
	var captured chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(chatResponse("  Optimize edilmiş prompt.  "))
	}))
	defer server.Close()

	rewriter := NewGenerativeRewriter(generationConfig(server.URL), testutil.NewTestLogger())
	analysis := models.Analysis{Intent: models.IntentTeaching, Category: "öğretim"}

	got, err := rewriter.Rewrite(context.Background(), "bana python öğret",
		[]string{"Sen bir Python öğretmenisin."}, analysis)
	require.NoError(t, err)
	assert.Equal(t, "Optimize edilmiş prompt.", got)

	// The instruction block embeds the original prompt, the analysis
	// labels and the retrieved example.
	assert.Equal(t, "test-model", captured.Model)
	assert.Equal(t, 1024, captured.MaxTokens)
	assert.InDelta(t, 0.7, captured.Temperature, 1e-9)
	assert.InDelta(t, 0.9, captured.TopP, 1e-9)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, RewriteSystemPrompt, captured.Messages[0].Content)
	assert.Contains(t, captured.Messages[1].Content, "bana python öğret")
	assert.Contains(t, captured.Messages[1].Content, "öğretim")
	assert.Contains(t, captured.Messages[1].Content, "Sen bir Python öğretmenisin.")
}

func TestGenerativeRewriter_UnconfiguredIsUnavailable(t *testing.T) {
	cfg := generationConfig("http://localhost:1")
	cfg.APIKey = ""
	rewriter := NewGenerativeRewriter(cfg, testutil.NewTestLogger())

	_, err := rewriter.Rewrite(context.Background(), "test", nil, models.Analysis{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerativeRewriter_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	rewriter := NewGenerativeRewriter(generationConfig(server.URL), testutil.NewTestLogger())
	_, err := rewriter.Rewrite(context.Background(), "test", nil, models.Analysis{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerativeRewriter_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	rewriter := NewGenerativeRewriter(generationConfig(server.URL), testutil.NewTestLogger())
	_, err := rewriter.Rewrite(context.Background(), "test", nil, models.Analysis{})
	assert.Error(t, err)
}

func TestGenerativeRewriter_NetworkError(t *testing.T) {
	// Nothing listens here; the dial fails fast.
	rewriter := NewGenerativeRewriter(generationConfig("http://127.0.0.1:1"), testutil.NewTestLogger())
	_, err := rewriter.Rewrite(context.Background(), "test", nil, models.Analysis{})
	assert.Error(t, err)
}

func TestBuildRewritePrompt_CapsExamples(t *testing.T) {
	examples := []string{"bir", "iki", "üç", "dört", "beş"}
	prompt := BuildRewritePrompt("orijinal", "genel", "general", examples)

	assert.Contains(t, prompt, "Örnek 3:")
	assert.NotContains(t, prompt, "Örnek 4:")
	assert.Contains(t, prompt, `"orijinal"`)
}

func TestBuildRewritePrompt_NoExamples(t *testing.T) {
	prompt := BuildRewritePrompt("orijinal", "genel", "general", nil)
	assert.Contains(t, prompt, "örnek bulunamadı")
}
