package testutil

import "github.com/user/promptlab-go/internal/models"

// SampleCatalog returns a small catalog for tests, in insertion order.
func SampleCatalog() []models.ExamplePrompt {
	return []models.ExamplePrompt{
		{
			Role:     "Python Teacher",
			Text:     "Sen bir Python öğretmenisin. Öğrencilere Python'ı adım adım öğret. Temel syntax'tan başla, her kavramı örneklerle açıkla.",
			Category: "teaching",
		},
		{
			Role:     "Code Reviewer",
			Text:     "Sen bir senior developer'sın. Kodu incele: okunabilirlik, performans, güvenlik. Yapıcı geri bildirim ver.",
			Category: "coding",
		},
		{
			Role:     "Content Writer",
			Text:     "Sen bir içerik yazarısın. SEO-friendly, engaging içerik yaz. Net başlıklar, değer kat.",
			Category: "writing",
		},
	}
}
