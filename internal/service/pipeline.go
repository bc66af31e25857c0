package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/user/promptlab-go/internal/models"
	"github.com/user/promptlab-go/internal/repository"
	"go.uber.org/zap"
)

// previewLimit bounds the prompt preview stored in the optimize log.
const previewLimit = 200

// Pipeline sequences Analyze → Retrieve → Rewrite → Assemble.
// Stateless across requests; all collaborators are injected once at
// startup and read-only afterwards.
type Pipeline struct {
	analyzer   *Analyzer
	searcher   *Searcher
	strategies []RewriteStrategy // ordered: first success wins
	logRepo    repository.OptimizeLogRepository // optional
	topN       int
	logger     *zap.Logger
}

// NewPipeline creates a Pipeline. The strategy list must end with a
// strategy that cannot fail (the fallback rewriter). logRepo may be nil
// to disable run persistence.
func NewPipeline(
	analyzer *Analyzer,
	searcher *Searcher,
	strategies []RewriteStrategy,
	logRepo repository.OptimizeLogRepository,
	topN int,
	logger *zap.Logger,
) *Pipeline {
	if topN <= 0 {
		topN = 3
	}
	return &Pipeline{
		analyzer:   analyzer,
		searcher:   searcher,
		strategies: strategies,
		logRepo:    logRepo,
		topN:       topN,
		logger:     logger,
	}
}

// Process runs the full optimization pipeline for one prompt. It always
// returns a complete result with the mode field populated; rewrite
// failures only show up as a fallback-labeled result, never as an error.
func (p *Pipeline) Process(ctx context.Context, prompt string) *models.PipelineResult {
	start := time.Now()

	// 1. Analyze — pure, cannot fail.
	analysis := p.analyzer.Analyze(prompt)

	// 2. Retrieve — degenerate input yields an empty slice, never an error.
	similar := p.searcher.Search(ctx, prompt, p.topN)
	exampleTexts := make([]string, len(similar))
	for i, s := range similar {
		exampleTexts[i] = s.Example.Text
	}

	// 3. Rewrite — ordered attempt; the final strategy never fails.
	optimized, strategy, generativeUnavailable := p.rewrite(ctx, prompt, exampleTexts, analysis)

	model := strategy.Name()
	if strategy.Mode() == models.ModeFallback && generativeUnavailable {
		model += " (generative unavailable)"
	}

	// 4. Assemble — every field populated, mode always present.
	result := &models.PipelineResult{
		OriginalPrompt:  prompt,
		Analysis:        analysis,
		SimilarExamples: similar,
		OptimizedPrompt: optimized,
		ImprovementPct:  improvementPct(analysis.OverallScore),
		GenerativeUsed:  strategy.Mode() == models.ModeGenerative,
		Model:           model,
		Mode:            strategy.Mode(),
	}

	p.logRun(result, time.Since(start))
	return result
}

// rewrite tries each strategy in order and returns the first success.
// The bool reports whether the generative path was skipped because it is
// unconfigured rather than because it failed.
func (p *Pipeline) rewrite(ctx context.Context, prompt string, examples []string, analysis models.Analysis) (string, RewriteStrategy, bool) {
	unavailable := false
	for _, strategy := range p.strategies {
		text, err := strategy.Rewrite(ctx, prompt, examples, analysis)
		if err == nil {
			return text, strategy, unavailable
		}
		if errors.Is(err, ErrUnavailable) {
			unavailable = true
			p.logger.Debug("rewrite strategy unconfigured, trying next",
				zap.String("strategy", strategy.Name()))
			continue
		}
		p.logger.Warn("rewrite strategy failed, trying next",
			zap.String("strategy", strategy.Name()),
			zap.Error(err))
	}

	// Unreachable when the strategy list ends with the fallback rewriter;
	// kept as a defined last resort.
	p.logger.Error("all rewrite strategies failed")
	return prompt, NewFallbackRewriter(), unavailable
}

// logRun persists the outcome asynchronously; the pipeline never blocks
// or fails on log storage.
func (p *Pipeline) logRun(result *models.PipelineResult, latency time.Duration) {
	if p.logRepo == nil {
		return
	}
	entry := &models.OptimizeLogEntry{
		RequestID:      uuid.NewString(),
		PromptPreview:  truncateRunes(result.OriginalPrompt, previewLimit),
		WordCount:      result.Analysis.WordCount,
		Intent:         result.Analysis.Intent,
		Mode:           result.Mode,
		Model:          result.Model,
		ImprovementPct: result.ImprovementPct,
		LatencyMs:      latency.Milliseconds(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := p.logRepo.Insert(ctx, entry); err != nil {
			p.logger.Warn("failed to persist optimize log", zap.Error(err))
		}
	}()
}

// improvementPct derives the displayed improvement from the overall
// score, clamped at zero.
func improvementPct(overallScore float64) float64 {
	pct := (1 - overallScore) * 100
	if pct < 0 {
		return 0
	}
	return pct
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
