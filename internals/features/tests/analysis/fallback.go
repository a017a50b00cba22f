package analysis

import (
	"fmt"
	"strings"

	"newmeclass_backend/internals/features/tests/scoring"
)

var elementLabels = map[string]string{
	"kayu":  "SI KREATIF",
	"api":   "SI PERASA",
	"tanah": "SI STABIL",
	"angin": "SI SOSIAL",
	"air":   "SI ADAPTIF",
}

type band struct {
	min     float64
	label   string
	summary string
}

// urut dari ambang tertinggi
var bands = []band{
	{80, "Sangat Potensial", "Anda menunjukkan potensi yang luar biasa! Kemampuan dan bakat Anda sangat menonjol di berbagai area."},
	{60, "Berkembang Baik", "Anda memiliki fondasi yang kuat untuk berkembang. Dengan fokus pada area tertentu, potensi Anda bisa dimaksimalkan."},
	{40, "Penuh Potensi", "Anda memiliki potensi tersembunyi yang bisa dikembangkan. Dengan bimbingan yang tepat, Anda bisa mencapai prestasi yang luar biasa."},
	{0, "Unik", "Setiap orang memiliki keunikan masing-masing. Mari fokus menemukan dan mengembangkan bakat tersembunyi Anda."},
}

// BandFor: label tingkat potensi dari persentase dimensi dominan.
func BandFor(pct float64) string {
	for _, b := range bands {
		if pct >= b.min {
			return b.label
		}
	}
	return bands[len(bands)-1].label
}

func bandSummary(pct float64) string {
	for _, b := range bands {
		if pct >= b.min {
			return b.summary
		}
	}
	return bands[len(bands)-1].summary
}

// FromResult menyusun klasifikasi deterministik dari hasil engine.
func FromResult(res scoring.Result) Classification {
	tpl := res.Template
	domPct := res.Percentages[res.Dominant]

	elements := map[string]scoring.DimensionScore{}
	for _, s := range res.Ranked() {
		if _, ok := elementLabels[s.Dimension]; ok {
			elements[s.Dimension] = s
		}
	}

	elementScores := make(map[string]ElementScore, len(elementLabels))
	dominantElement := ""
	bestTotal := 0
	for dim, label := range elementLabels {
		s, ok := elements[dim]
		elementScores[strings.ToUpper(dim)] = ElementScore{Percentage: s.Percentage, Label: label}
		if !ok {
			continue
		}
		if dominantElement == "" || s.Total > bestTotal || (s.Total == bestTotal && dim < dominantElement) {
			dominantElement, bestTotal = dim, s.Total
		}
	}

	summary := tpl.Summary
	if summary == "" {
		summary = bandSummary(domPct)
	}

	return Classification{
		Source:                SourceRules,
		PersonalityType:       energyType(res.Totals),
		DominantType:          strings.ToUpper(BandFor(domPct)),
		DominantElement:       strings.ToUpper(dominantElement),
		ElementScores:         elementScores,
		Summary:               summary,
		Strengths:             tpl.Strengths,
		AreasToImprove:        tpl.AreasToImprove,
		CareerRecommendations: tpl.CareerRecommendations,
		Tips:                  tpl.Tips,
		DetailedAnalysis: DetailedAnalysis{
			Personality: fmt.Sprintf("Berdasarkan hasil test, Anda menunjukkan karakteristik %s. Dimensi %s menjadi kekuatan utama Anda dengan skor %.0f%%.",
				strings.ToLower(tpl.Type), res.Dominant, domPct),
			Talent: fmt.Sprintf("Bakat Anda terlihat di area %s. Dengan skor %.0f%%, Anda memiliki fondasi yang baik untuk dikembangkan lebih lanjut.",
				res.Dominant, domPct),
			Motivation: "Teruslah belajar dan berkembang! Setiap langkah kecil membawa Anda lebih dekat ke tujuan. Ingat, perjalanan ribuan mil dimulai dengan satu langkah.",
		},
		Scores: res.Ranked(),
	}
}

// energyType: INTROVERT / EXTROVERT, seri (termasuk dua-duanya nol) jadi AMBIVERT.
func energyType(totals map[string]int) string {
	in, ex := totals["introvert"], totals["extrovert"]
	amb := totals["ambivert"]
	switch {
	case amb > in && amb > ex:
		return "AMBIVERT"
	case in > ex:
		return "INTROVERT"
	case ex > in:
		return "EXTROVERT"
	default:
		return "AMBIVERT"
	}
}
