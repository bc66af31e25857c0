package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/user/promptlab-go/internal/models"
)

// FallbackRewriter is the deterministic template-based strategy. It needs
// no external service and never fails, so it always terminates the
// pipeline's ordered strategy attempt.
type FallbackRewriter struct{}

// NewFallbackRewriter creates a new FallbackRewriter.
func NewFallbackRewriter() *FallbackRewriter {
	return &FallbackRewriter{}
}

// Name returns the strategy label recorded in results.
func (f *FallbackRewriter) Name() string {
	return "Fallback Optimizer"
}

// Mode identifies the fallback rewrite path.
func (f *FallbackRewriter) Mode() models.RewriteMode {
	return models.ModeFallback
}

// topicStopWords are dropped before extracting the topic words.
var topicStopWords = map[string]bool{
	"sen":      true,
	"bir":      true,
	"bana":     true,
	"hakkında": true,
	"yaz":      true,
	"öğret":    true,
}

// personaMarker is the "You are a ___" pattern the catalog examples follow.
const personaMarker = "Sen bir"

// Rewrite produces an optimized prompt from templates. The error is
// always nil; the signature exists to satisfy RewriteStrategy.
func (f *FallbackRewriter) Rewrite(_ context.Context, original string, examples []string, analysis models.Analysis) (string, error) {
	topic := extractTopic(original)

	// Splice the topic into the closest retrieved persona template.
	if len(examples) > 0 && strings.Contains(examples[0], personaMarker) {
		rest := "Kullanıcıya yardımcı ol."
		if _, after, found := strings.Cut(examples[0], "."); found && strings.TrimSpace(after) != "" {
			rest = strings.TrimSpace(after)
		}
		return fmt.Sprintf("Sen bir %s uzmanısın. %s", topic, rest), nil
	}

	if analysis.Intent == models.IntentTeaching {
		return fmt.Sprintf(
			"Sen bir %s öğretmenisin. Kullanıcıya %s konusunu adım adım öğret. Örnekler ver, pratik alıştırmalar sun.",
			topic, topic), nil
	}
	return fmt.Sprintf(
		"%s hakkında detaylı ve kapsamlı bir yanıt ver. Örnekler kullan, net açıklamalar yap.",
		capitalize(topic)), nil
}

// extractTopic strips stop words and short words, keeping the first two
// content words. "konu" when nothing survives.
func extractTopic(prompt string) string {
	var content []string
	for _, w := range strings.Fields(prompt) {
		if topicStopWords[strings.ToLower(w)] || len([]rune(w)) <= 2 {
			continue
		}
		content = append(content, w)
		if len(content) == 2 {
			break
		}
	}
	if len(content) == 0 {
		return "konu"
	}
	return strings.Join(content, " ")
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
