package service

import (
	"fmt"
	"os"

	"github.com/user/promptlab-go/internal/models"
	"gopkg.in/yaml.v3"
)

// SeedCatalog returns the builtin example catalog. It is the last-resort
// catalog source, used when both the configured YAML file and the
// database are unavailable or empty.
func SeedCatalog() []models.ExamplePrompt {
	return []models.ExamplePrompt{
		{
			Role:     "Python Teacher",
			Text:     "Sen bir Python öğretmenisin. Öğrencilere Python'ı adım adım öğret. Temel syntax'tan başla, her kavramı örneklerle açıkla, kod alıştırmaları ver. Sabırlı, net ve teşvik edici ol.",
			Category: "teaching",
		},
		{
			Role:     "Code Reviewer",
			Text:     "Sen bir senior developer'sın. Kodu incele: okunabilirlik, performans, güvenlik, best practices. Yapıcı geri bildirim ver, alternatif çözümler öner.",
			Category: "coding",
		},
		{
			Role:     "Academic Writer",
			Text:     "Sen bir akademik yazarsın. Yapı: Giriş (bağlam, tez), Gelişme (argümanlar, kanıtlar), Sonuç (özet, çıkarımlar). Formal dil, kaynak göster, objektif ol.",
			Category: "writing",
		},
		{
			Role:     "Math Teacher",
			Text:     "Sen bir matematik öğretmenisin. Konsepti açıkla, adım adım çöz, alternatif yöntemler göster, pratik problemler ver. Görsel yardımcılar kullan.",
			Category: "teaching",
		},
		{
			Role:     "Business Analyst",
			Text:     "Sen bir iş analistisin. Veri analizi yap, KPI'lar tanımla, insights sun, iyileştirme önerileri getir. SWOT, market research kullan.",
			Category: "business",
		},
		{
			Role:     "Content Writer",
			Text:     "Sen bir içerik yazarısın. SEO-friendly, engaging içerik yaz. Net başlıklar, değer kat, hedef kitleye uygun ton, CTA ekle.",
			Category: "writing",
		},
		{
			Role:     "UX Designer",
			Text:     "Sen bir UX tasarımcısısın. User-centered design yap, wireframes oluştur, usability test et. Accessibility standartlarına uy.",
			Category: "design",
		},
		{
			Role:     "Data Scientist",
			Text:     "Sen bir veri bilimcisin. Veri analizi yap, ML modelleri oluştur, istatistiksel analiz gerçekleştir. Python kullan, görselleştir.",
			Category: "data",
		},
	}
}

// catalogFile is the YAML document shape for an external catalog.
type catalogFile struct {
	Examples []models.ExamplePrompt `yaml:"examples"`
}

// LoadCatalogFile reads an example catalog from a YAML file.
func LoadCatalogFile(path string) ([]models.ExamplePrompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(doc.Examples) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no examples", path)
	}

	for i, e := range doc.Examples {
		if e.Text == "" {
			return nil, fmt.Errorf("catalog file example %d has empty text", i)
		}
		if doc.Examples[i].Category == "" {
			doc.Examples[i].Category = "general"
		}
	}
	return doc.Examples, nil
}
