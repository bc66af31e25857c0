package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/user/promptlab-go/internal/config"
	"github.com/user/promptlab-go/internal/models"
	"go.uber.org/zap"
)

// GenerativeRewriter rewrites prompts via an OpenAI-compatible chat
// completions API. Without a credential the strategy reports
// ErrUnavailable and the pipeline moves on; this is reduced capability,
// not an error condition.
type GenerativeRewriter struct {
	cfg    config.GenerationConfig
	logger *zap.Logger
	client *http.Client
}

// NewGenerativeRewriter creates a new GenerativeRewriter.
func NewGenerativeRewriter(cfg config.GenerationConfig, logger *zap.Logger) *GenerativeRewriter {
	return &GenerativeRewriter{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Name returns the model label recorded in results.
func (g *GenerativeRewriter) Name() string {
	return fmt.Sprintf("%s (RAG)", g.cfg.Model)
}

// Mode identifies the generative rewrite path.
func (g *GenerativeRewriter) Mode() models.RewriteMode {
	return models.ModeGenerative
}

// chatCompletionRequest is the request body for the chat completions API.
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the subset of the response we read.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Rewrite sends the constructed instruction block to the generation API
// and returns the trimmed model output.
func (g *GenerativeRewriter) Rewrite(ctx context.Context, original string, examples []string, analysis models.Analysis) (string, error) {
	if g.cfg.APIKey == "" {
		return "", ErrUnavailable
	}

	userPrompt := BuildRewritePrompt(original, analysis.Category, string(analysis.Intent), examples)

	reqBody := chatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		TopP:        g.cfg.TopP,
		Messages: []chatMessage{
			{Role: "system", Content: RewriteSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal generation request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", strings.TrimSuffix(g.cfg.BaseURL, "/"))
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(g.cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(timeoutCtx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create generation request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("generation API call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp chatCompletionResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("generation response has no choices")
	}

	optimized := strings.TrimSpace(apiResp.Choices[0].Message.Content)
	if optimized == "" {
		return "", fmt.Errorf("generation response is empty")
	}

	g.logger.Debug("generative rewrite produced",
		zap.String("model", g.cfg.Model),
		zap.Int("length", len(optimized)))
	return optimized, nil
}
