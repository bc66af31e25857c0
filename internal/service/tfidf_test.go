//go:build !integration && !e2e
// +build !integration,!e2e

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "simple words",
			text:     "bana python öğret",
			expected: []string{"bana", "python", "öğret"},
		},
		{
			name:     "punctuation split and lowercase",
			text:     "Python'ı öğret! (adım adım)",
			expected: []string{"python", "öğret", "adım", "adım"},
		},
		{
			name:     "single-rune tokens dropped",
			text:     "a b ve c",
			expected: []string{"ve"},
		},
		{
			name:     "empty",
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenize(tt.text))
		})
	}
}

func TestTFIDFIndex_Similarities(t *testing.T) {
	docs := []string{
		"python dersleri python alıştırmaları",
		"kod inceleme ve geri bildirim",
		"akademik makale yazımı",
	}
	idx := newTFIDFIndex(docs, 0)

	t.Run("matching document scores highest", func(t *testing.T) {
		sims := idx.Similarities("python öğrenmek istiyorum")
		require.Len(t, sims, 3)
		assert.Greater(t, sims[0], sims[1])
		assert.Greater(t, sims[0], sims[2])
	})

	t.Run("identical document scores one", func(t *testing.T) {
		sims := idx.Similarities(docs[0])
		assert.InDelta(t, 1.0, sims[0], 1e-9)
	})

	t.Run("out of vocabulary query scores zero everywhere", func(t *testing.T) {
		sims := idx.Similarities("xyzzy qwerty")
		for i, sim := range sims {
			assert.Zero(t, sim, "doc %d", i)
		}
	})

	t.Run("similarities stay within cosine bounds", func(t *testing.T) {
		sims := idx.Similarities("kod inceleme makale python")
		for _, sim := range sims {
			assert.GreaterOrEqual(t, sim, 0.0)
			assert.LessOrEqual(t, sim, 1.0+1e-9)
		}
	})
}

func TestTFIDFIndex_EmptyCorpus(t *testing.T) {
	idx := newTFIDFIndex(nil, 0)
	assert.Empty(t, idx.Similarities("herhangi bir sorgu"))
}

func TestTFIDFIndex_VocabularyCap(t *testing.T) {
	docs := []string{
		"bir iki üç dört beş",
		"bir iki üç",
		"bir iki",
	}
	idx := newTFIDFIndex(docs, 2)

	// Only the two most frequent corpus terms survive the cap.
	assert.Len(t, idx.vocab, 2)
	assert.Contains(t, idx.vocab, "bir")
	assert.Contains(t, idx.vocab, "iki")
}
