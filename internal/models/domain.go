// Package models defines domain types shared across the application.
package models

import "time"

// Intent is the detected purpose of a user prompt.
type Intent string

const (
	IntentTeaching        Intent = "teaching"
	IntentRolePlay        Intent = "role_play"
	IntentCodeGeneration  Intent = "code_generation"
	IntentContentCreation Intent = "content_creation"
	IntentGeneral         Intent = "general"
)

// CategoryLabel returns the display label for an intent.
// The mapping is 1:1; labels are user-facing and localized.
func (i Intent) CategoryLabel() string {
	switch i {
	case IntentTeaching:
		return "öğretim"
	case IntentRolePlay:
		return "rol oynama"
	case IntentCodeGeneration:
		return "kod yazma"
	case IntentContentCreation:
		return "içerik oluşturma"
	default:
		return "genel"
	}
}

// RewriteMode identifies which rewrite path produced the optimized prompt.
type RewriteMode string

const (
	ModeGenerative RewriteMode = "generative_rag"
	ModeFallback   RewriteMode = "fallback"
)

// ExamplePrompt is one curated example from the catalog.
// Loaded once at startup and never mutated afterwards.
type ExamplePrompt struct {
	ID       int64  `json:"id,omitempty" yaml:"-"`
	Role     string `json:"role" yaml:"role"`
	Text     string `json:"text" yaml:"text"`
	Category string `json:"category" yaml:"category"`
}

// Analysis is the per-request heuristic assessment of a raw prompt.
type Analysis struct {
	WordCount        int      `json:"word_count"`
	Intent           Intent   `json:"intent"`
	Category         string   `json:"category"`
	LengthScore      float64  `json:"length_score"`
	SpecificityScore float64  `json:"specificity_score"`
	OverallScore     float64  `json:"overall_score"`
	Issues           []string `json:"issues"`
}

// SimilarExample pairs a retrieved catalog example with its distance
// from the query (0 = identical, higher = less similar).
type SimilarExample struct {
	Example  ExamplePrompt `json:"example"`
	Distance float64       `json:"distance"`
}

// PipelineResult is the complete outcome of one optimization request.
// Mode is always populated, even when the generative path failed.
type PipelineResult struct {
	OriginalPrompt  string           `json:"original_prompt"`
	Analysis        Analysis         `json:"analysis"`
	SimilarExamples []SimilarExample `json:"similar_examples"`
	OptimizedPrompt string           `json:"optimized_prompt"`
	ImprovementPct  float64          `json:"improvement_percentage"`
	GenerativeUsed  bool             `json:"generative_ai_used"`
	Model           string           `json:"ai_model"`
	Mode            RewriteMode      `json:"rag_mode"`
}

// OptimizeLogEntry is one persisted record of a pipeline run.
type OptimizeLogEntry struct {
	RequestID      string      `json:"request_id"`
	PromptPreview  string      `json:"prompt_preview"`
	WordCount      int         `json:"word_count"`
	Intent         Intent      `json:"intent"`
	Mode           RewriteMode `json:"mode"`
	Model          string      `json:"model"`
	ImprovementPct float64     `json:"improvement_percentage"`
	LatencyMs      int64       `json:"latency_ms"`
}

// OptimizeLog is a stored log row as read back from the database.
type OptimizeLog struct {
	ID             int64       `json:"id"`
	RequestID      string      `json:"request_id"`
	PromptPreview  string      `json:"prompt_preview"`
	WordCount      int         `json:"word_count"`
	Intent         Intent      `json:"intent"`
	Mode           RewriteMode `json:"mode"`
	Model          string      `json:"model"`
	ImprovementPct float64     `json:"improvement_percentage"`
	LatencyMs      int64       `json:"latency_ms"`
	CreatedAt      time.Time   `json:"created_at"`
}

// OptimizeStats aggregates the optimize log for the status endpoint.
type OptimizeStats struct {
	TotalRequests  int64            `json:"total_requests"`
	FallbackCount  int64            `json:"fallback_count"`
	AvgLatencyMs   float64          `json:"avg_latency_ms"`
	AvgImprovement float64          `json:"avg_improvement"`
	IntentCounts   map[string]int64 `json:"intent_counts"`
}
