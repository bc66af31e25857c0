package service

import (
	"context"
	"errors"
	"sync"

	"github.com/user/promptlab-go/internal/models"
	"go.uber.org/zap"
)

// ErrEmptyCatalog is returned by Load for an empty or nil catalog.
var ErrEmptyCatalog = errors.New("example catalog is empty")

// indexSnapshot binds a catalog to the indexes built from it. The three
// slices are parallel: position i always refers to the same example.
// Snapshots are immutable once published.
type indexSnapshot struct {
	examples   []models.ExamplePrompt
	tfidf      *tfidfIndex
	embeddings [][]float64 // nil when the semantic backend is unavailable
}

// Store holds the example prompt catalog and its search indexes.
// Load replaces everything atomically; readers always see a consistent
// catalog/index pair.
type Store struct {
	mu            sync.RWMutex
	snap          *indexSnapshot
	embedder      Embedder // optional
	maxVocabulary int
	logger        *zap.Logger
}

// NewStore creates an empty Store. embedder may be nil, in which case
// only the TF-IDF backend is indexed.
func NewStore(embedder Embedder, maxVocabulary int, logger *zap.Logger) *Store {
	return &Store{
		embedder:      embedder,
		maxVocabulary: maxVocabulary,
		logger:        logger,
	}
}

// Load replaces the stored examples and rebuilds the search indexes.
// All-or-nothing: on error the previous catalog stays in place.
// Embedding failures are not errors; they only disable the semantic
// backend for this catalog.
func (s *Store) Load(ctx context.Context, examples []models.ExamplePrompt) error {
	if len(examples) == 0 {
		return ErrEmptyCatalog
	}

	catalog := make([]models.ExamplePrompt, len(examples))
	copy(catalog, examples)

	docs := make([]string, len(catalog))
	for i, e := range catalog {
		docs[i] = e.Text
	}

	snap := &indexSnapshot{
		examples: catalog,
		tfidf:    newTFIDFIndex(docs, s.maxVocabulary),
	}

	if s.embedder != nil && s.embedder.Available() {
		embeddings, err := s.embedDocs(ctx, docs)
		if err != nil {
			s.logger.Warn("document embedding failed, semantic search disabled for this catalog",
				zap.Error(err))
		} else {
			snap.embeddings = embeddings
		}
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.logger.Info("example catalog loaded",
		zap.Int("examples", len(catalog)),
		zap.Bool("semantic_index", snap.embeddings != nil))
	return nil
}

// All returns the stored examples in catalog order.
func (s *Store) All() []models.ExamplePrompt {
	snap := s.snapshot()
	if snap == nil {
		return nil
	}
	out := make([]models.ExamplePrompt, len(snap.examples))
	copy(out, snap.examples)
	return out
}

// Len returns the number of stored examples.
func (s *Store) Len() int {
	snap := s.snapshot()
	if snap == nil {
		return 0
	}
	return len(snap.examples)
}

// Loaded reports whether a catalog has been loaded.
func (s *Store) Loaded() bool {
	return s.snapshot() != nil
}

func (s *Store) snapshot() *indexSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// embedDocs embeds every document; any single failure aborts the whole
// batch so the embedding matrix is never partially aligned.
func (s *Store) embedDocs(ctx context.Context, docs []string) ([][]float64, error) {
	embeddings := make([][]float64, len(docs))
	for i, doc := range docs {
		vec, err := s.embedder.Embed(ctx, doc)
		if err != nil {
			return nil, err
		}
		embeddings[i] = vec
	}
	return embeddings, nil
}
