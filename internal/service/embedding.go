package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/user/promptlab-go/internal/config"
	"go.uber.org/zap"
)

// Embedder produces a vector representation for a text.
type Embedder interface {
	// Available reports whether the backend is configured at all.
	Available() bool
	Embed(ctx context.Context, text string) ([]float64, error)
}

// EmbeddingClient calls an OpenAI-compatible embeddings API.
type EmbeddingClient struct {
	cfg    config.EmbeddingConfig
	logger *zap.Logger
	client *http.Client
}

// NewEmbeddingClient creates a new EmbeddingClient.
func NewEmbeddingClient(cfg config.EmbeddingConfig, logger *zap.Logger) *EmbeddingClient {
	return &EmbeddingClient{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Available reports whether the embedding backend is enabled and configured.
func (ec *EmbeddingClient) Available() bool {
	return ec.cfg.Enabled && ec.cfg.BaseURL != ""
}

// embeddingAPIRequest is the request body for OpenAI-compatible embedding API.
type embeddingAPIRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// embeddingAPIResponse is the response from OpenAI-compatible embedding API.
type embeddingAPIResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Embed returns the embedding vector for the given text.
func (ec *EmbeddingClient) Embed(ctx context.Context, text string) ([]float64, error) {
	if !ec.Available() {
		return nil, fmt.Errorf("embedding backend not configured")
	}

	reqBody := embeddingAPIRequest{
		Model: ec.cfg.Model,
		Input: text,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	// Try /v1/embeddings first, fall back to /embeddings
	urls := []string{
		fmt.Sprintf("%s/v1/embeddings", ec.cfg.BaseURL),
		fmt.Sprintf("%s/embeddings", ec.cfg.BaseURL),
	}

	var lastErr error
	for _, url := range urls {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
		if err != nil {
			lastErr = err
			continue
		}

		req.Header.Set("Content-Type", "application/json")
		if ec.cfg.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+ec.cfg.APIKey)
		}

		resp, err := ec.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("embedding API returned status %d: %s", resp.StatusCode, string(respBody))
			continue
		}

		var apiResp embeddingAPIResponse
		if err := json.Unmarshal(respBody, &apiResp); err != nil {
			lastErr = fmt.Errorf("decode embedding response: %w", err)
			continue
		}

		if len(apiResp.Data) == 0 || len(apiResp.Data[0].Embedding) == 0 {
			lastErr = fmt.Errorf("empty embedding response")
			continue
		}

		return apiResp.Data[0].Embedding, nil
	}

	return nil, fmt.Errorf("all embedding API endpoints failed: %w", lastErr)
}
