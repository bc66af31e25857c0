package service

import (
	"context"
	"math"
	"sort"

	"github.com/user/promptlab-go/internal/models"
	"go.uber.org/zap"
)

// Searcher returns the stored examples most similar to a query.
// Layer 1: semantic embeddings (when the catalog was embedded at load)
// Layer 2: in-process TF-IDF cosine similarity
// Both layers produce the same result shape, sorted ascending by
// distance = 1 - cosine similarity.
type Searcher struct {
	store    *Store
	embedder Embedder // optional
	logger   *zap.Logger
}

// NewSearcher creates a new Searcher. embedder may be nil.
func NewSearcher(store *Store, embedder Embedder, logger *zap.Logger) *Searcher {
	return &Searcher{store: store, embedder: embedder, logger: logger}
}

// Search returns up to topN examples sorted by non-decreasing distance.
// Never fails: degenerate input yields a degenerate-but-defined result
// (empty catalog → empty slice; out-of-vocabulary query → first topN
// examples in catalog order at distance 1).
func (s *Searcher) Search(ctx context.Context, query string, topN int) []models.SimilarExample {
	snap := s.store.snapshot()
	if snap == nil || len(snap.examples) == 0 {
		return []models.SimilarExample{}
	}
	if topN > len(snap.examples) {
		topN = len(snap.examples)
	}
	if topN <= 0 {
		return []models.SimilarExample{}
	}

	sims := s.similarities(ctx, snap, query)

	// Stable sort keeps catalog insertion order for ties, which also
	// covers the all-zero vector case: first topN in corpus order.
	order := make([]int, len(sims))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})

	results := make([]models.SimilarExample, 0, topN)
	for _, i := range order[:topN] {
		results = append(results, models.SimilarExample{
			Example:  snap.examples[i],
			Distance: 1 - sims[i],
		})
	}
	return results
}

// similarities scores the query against every document, preferring the
// semantic index and falling back to TF-IDF on any failure.
func (s *Searcher) similarities(ctx context.Context, snap *indexSnapshot, query string) []float64 {
	if snap.embeddings != nil && s.embedder != nil {
		qv, err := s.embedder.Embed(ctx, query)
		if err != nil {
			s.logger.Warn("query embedding failed, falling back to tf-idf", zap.Error(err))
		} else {
			sims := make([]float64, len(snap.embeddings))
			for i, dv := range snap.embeddings {
				sims[i] = cosineSimilarity(qv, dv)
			}
			return sims
		}
	}
	return snap.tfidf.Similarities(query)
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Zero-magnitude input (the undefined 0/0 case) scores 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
