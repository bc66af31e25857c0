package service

import (
	"fmt"
	"strings"
)

// Rewrite prompt definitions for the generative strategy.

// RewriteSystemPrompt frames the generation model as a prompt
// optimization expert.
const RewriteSystemPrompt = `Sen bir prompt optimizasyon uzmanısın. Görevin kullanıcının basit prompt'unu, profesyonel ve etkili bir prompt'a dönüştürmek.`

// maxPromptExamples caps how many retrieved examples are embedded in the
// instruction block.
const maxPromptExamples = 3

// BuildRewritePrompt constructs the user-turn instruction block embedding
// the original prompt, the detected category and intent, and the retrieved
// examples.
func BuildRewritePrompt(original, category, intent string, examples []string) string {
	if len(examples) > maxPromptExamples {
		examples = examples[:maxPromptExamples]
	}

	var sb strings.Builder
	for i, example := range examples {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Örnek %d:\n%s", i+1, example)
	}
	examplesText := sb.String()
	if examplesText == "" {
		examplesText = "(örnek bulunamadı)"
	}

	return fmt.Sprintf(`KULLANICI PROMPT'U:
"%s"

PROMPT ANALİZİ:
- Kategori: %s
- Amaç: %s

BENZER BAŞARILI PROMPT ÖRNEKLERİ:
%s

GÖREV:
Yukarıdaki başarılı örnekleri referans alarak, kullanıcının prompt'unu optimize et.

KURALLAR:
1. Orijinal prompt'un amacını koru
2. Benzer örneklerdeki yapıyı ve stili uygula
3. Net, detaylı ve actionable bir prompt yaz
4. Orijinal prompt hangi dildeyse o dili kullan
5. Uzun açıklamalar yapma, direkt optimize edilmiş prompt'u ver

OPTİMİZE EDİLMİŞ PROMPT:`, original, category, intent, examplesText)
}
