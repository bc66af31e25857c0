package service

import (
	"sort"
	"strings"

	"github.com/user/promptlab-go/internal/models"
)

// Analyzer performs rule-based prompt analysis.
// Intent rules are evaluated by priority (highest first); the first
// matching rule wins. The ordering between builtins is deliberate:
// "öğret" in a prompt that also carries a persona marker still counts
// as teaching.
type Analyzer struct {
	rules []IntentRule // sorted by priority desc
}

// IntentRule maps a marker set to an intent.
type IntentRule struct {
	Intent   models.Intent
	Markers  []string
	Priority int
}

// Scoring thresholds and constants. OverallScore is intentionally a
// constant: the improvement metric downstream depends on it.
const (
	shortPromptWords  = 10
	lengthScoreShort  = 0.4
	lengthScoreLong   = 0.7
	specificityScore  = 0.3
	overallScoreConst = 0.4
)

// builtinIntentRules defines the default intent detection rules.
var builtinIntentRules = []IntentRule{
	{
		Intent:   models.IntentTeaching,
		Markers:  []string{"öğret", "nasıl", "anlat", "açıkla"},
		Priority: 50,
	},
	{
		Intent:   models.IntentRolePlay,
		Markers:  []string{"sen bir", "rolünde"},
		Priority: 40,
	},
	{
		Intent:   models.IntentCodeGeneration,
		Markers:  []string{"kod yaz", "program"},
		Priority: 30,
	},
	{
		Intent:   models.IntentContentCreation,
		Markers:  []string{"yaz", "oluştur"},
		Priority: 20,
	},
}

// NewAnalyzer creates an analyzer with builtin + custom rules.
// A custom rule with the same intent replaces the builtin marker set.
// Equal priorities keep declaration order (builtins first, then customs
// in the order given), so rule evaluation is deterministic.
func NewAnalyzer(customRules []IntentRule) *Analyzer {
	overrides := make(map[models.Intent]IntentRule, len(customRules))
	for _, r := range customRules {
		if len(r.Markers) > 0 {
			overrides[r.Intent] = r
		}
	}

	rules := make([]IntentRule, 0, len(builtinIntentRules)+len(customRules))
	seen := make(map[models.Intent]bool, len(builtinIntentRules)+len(customRules))
	for _, r := range builtinIntentRules {
		if o, ok := overrides[r.Intent]; ok {
			r = o
		}
		rules = append(rules, r)
		seen[r.Intent] = true
	}
	for _, r := range customRules {
		if len(r.Markers) > 0 && !seen[r.Intent] {
			rules = append(rules, r)
			seen[r.Intent] = true
		}
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})

	return &Analyzer{rules: rules}
}

// Analyze classifies a raw prompt and scores it. Pure and deterministic:
// no external calls, no hidden state.
func (a *Analyzer) Analyze(text string) models.Analysis {
	wordCount := len(strings.Fields(text))
	intent := a.detectIntent(text)

	analysis := models.Analysis{
		WordCount:        wordCount,
		Intent:           intent,
		Category:         intent.CategoryLabel(),
		LengthScore:      lengthScoreLong,
		SpecificityScore: specificityScore,
		OverallScore:     overallScoreConst,
		Issues:           []string{},
	}
	if wordCount < shortPromptWords {
		analysis.LengthScore = lengthScoreShort
		analysis.Issues = []string{"Çok kısa", "Detay eksik"}
	}
	return analysis
}

// detectIntent returns the intent of the highest-priority matching rule.
func (a *Analyzer) detectIntent(text string) models.Intent {
	lower := strings.ToLower(text)
	for _, rule := range a.rules {
		for _, marker := range rule.Markers {
			if strings.Contains(lower, marker) {
				return rule.Intent
			}
		}
	}
	return models.IntentGeneral
}
