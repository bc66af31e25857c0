package service

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// tfidfIndex is a term-weighting model fit over the example corpus.
// Weights use smoothed idf (ln((1+n)/(1+df)) + 1) and l2-normalized
// document vectors, so cosine similarity reduces to a dot product.
type tfidfIndex struct {
	vocab      map[string]int // term -> column
	idf        []float64
	docVectors [][]float64 // l2-normalized, row i = document i
}

// newTFIDFIndex fits an index over the documents. maxVocabulary caps the
// vocabulary to the most frequent corpus terms; 0 means unlimited.
func newTFIDFIndex(docs []string, maxVocabulary int) *tfidfIndex {
	idx := &tfidfIndex{vocab: make(map[string]int)}
	if len(docs) == 0 {
		return idx
	}

	// Document frequencies and total term counts over the corpus.
	docTokens := make([][]string, len(docs))
	df := make(map[string]int)
	totalFreq := make(map[string]int)
	for i, doc := range docs {
		tokens := tokenize(doc)
		docTokens[i] = tokens
		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			totalFreq[tok]++
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	terms := make([]string, 0, len(totalFreq))
	for term := range totalFreq {
		terms = append(terms, term)
	}
	// Most frequent first; alphabetical tie-break keeps the fit deterministic.
	sort.Slice(terms, func(i, j int) bool {
		if totalFreq[terms[i]] != totalFreq[terms[j]] {
			return totalFreq[terms[i]] > totalFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxVocabulary > 0 && len(terms) > maxVocabulary {
		terms = terms[:maxVocabulary]
	}
	sort.Strings(terms)
	for col, term := range terms {
		idx.vocab[term] = col
	}

	n := float64(len(docs))
	idx.idf = make([]float64, len(terms))
	for term, col := range idx.vocab {
		idx.idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	idx.docVectors = make([][]float64, len(docs))
	for i, tokens := range docTokens {
		idx.docVectors[i] = idx.vectorize(tokens)
	}

	return idx
}

// Similarities returns the cosine similarity between the query and every
// document, in document order. An out-of-vocabulary query yields all zeros.
func (idx *tfidfIndex) Similarities(query string) []float64 {
	sims := make([]float64, len(idx.docVectors))
	qv := idx.vectorize(tokenize(query))
	if qv == nil {
		return sims
	}
	for i, dv := range idx.docVectors {
		if dv == nil {
			continue
		}
		var dot float64
		for col, w := range dv {
			dot += w * qv[col]
		}
		sims[i] = dot
	}
	return sims
}

// vectorize builds the l2-normalized tf-idf vector for a token sequence.
// Returns nil when no token is in the vocabulary (undefined cosine).
func (idx *tfidfIndex) vectorize(tokens []string) []float64 {
	if len(idx.vocab) == 0 {
		return nil
	}
	vec := make([]float64, len(idx.idf))
	matched := false
	for _, tok := range tokens {
		if col, ok := idx.vocab[tok]; ok {
			vec[col] += idx.idf[col]
			matched = true
		}
	}
	if !matched {
		return nil
	}
	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for col := range vec {
		vec[col] /= norm
	}
	return vec
}

// tokenize lowercases the text and splits it into letter/digit runs of at
// least two runes.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	var tokens []string
	var current []rune
	flush := func() {
		if len(current) >= 2 {
			tokens = append(tokens, string(current))
		}
		current = current[:0]
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current = append(current, r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
