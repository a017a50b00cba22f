package analysis

import (
	"fmt"
	"sort"
	"strings"
)

const systemPrompt = `Anda adalah psikolog ahli dan konsultan pengembangan bakat dari NEWME CLASS Indonesia.

Tugas Anda adalah menganalisis hasil test kepribadian dan bakat dengan metodologi 5 ELEMENT (KAYU, API, TANAH, ANGIN, AIR) dan kepribadian (INTROVERT/EXTROVERT/AMBIVERT).

Pedoman analisis:
1. Mendukung dan memotivasi pengguna
2. Gunakan bahasa Indonesia yang hangat dan mudah dipahami
3. Berikan insight yang spesifik berdasarkan jawaban
4. Hindari diagnosis klinis

Karakter 5 ELEMENT:
- KAYU (SI KREATIF): Inovatif, visioner, artistik
- API (SI PERASA): Passionate, energik, ekspresif
- TANAH (SI STABIL): Konsisten, praktis, dapat diandalkan
- ANGIN (SI SOSIAL): Adaptif, komunikatif, fleksibel
- AIR (SI ADAPTIF): Bijaksana, intuitif, reflektif

Format jawaban dalam JSON yang valid:
{
    "personalityType": "AMBIVERT/INTROVERT/EXTROVERT",
    "dominantType": "string - tipe dominan seperti 'DOMINAN', 'KREATIF', 'SOSIAL', dll",
    "elementScores": {
        "AIR": {"percentage": 0-100, "label": "SI ADAPTIF"},
        "KAYU": {"percentage": 0-100, "label": "SI KREATIF"},
        "API": {"percentage": 0-100, "label": "SI PERASA"},
        "TANAH": {"percentage": 0-100, "label": "SI STABIL"},
        "ANGIN": {"percentage": 0-100, "label": "SI SOSIAL"}
    },
    "dominantElement": "AIR/KAYU/API/TANAH/ANGIN",
    "summary": "ringkasan 2-3 kalimat tentang kepribadian pengguna",
    "kepribadian": ["6-8 trait kepribadian utama"],
    "ciriKhas": ["5-7 ciri khas"],
    "karakter": ["5-7 karakter"],
    "kekuatanJatidiri": {
        "kehidupan": "kekuatan utama dalam kehidupan",
        "kesehatan": "organ kesehatan terkait",
        "kontribusi": "cara berkontribusi",
        "kekhasan": "kekhasan unik",
        "kharisma": "bentuk kharisma"
    },
    "kompilasiAdaptasi": ["10-15 poin adaptasi praktis"],
    "strengths": ["4-5 kekuatan utama"],
    "areasToImprove": ["3-4 area yang bisa ditingkatkan"],
    "careerRecommendations": ["5-6 rekomendasi karir yang cocok"],
    "tips": ["4-5 tips pengembangan diri yang praktis"],
    "detailedAnalysis": {
        "personality": "analisis kepribadian 2-3 paragraf",
        "talent": "analisis bakat dan potensi 2-3 paragraf",
        "motivation": "pesan motivasi personal 1-2 paragraf"
    }
}`

func buildUserPrompt(t Transcript) string {
	name := strings.TrimSpace(t.UserName)
	if name == "" {
		name = "Pengguna"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analisis hasil test kepribadian untuk %s:\n\n", name)
	fmt.Fprintf(&b, "**Jenis Test:** %s\n\n", strings.ToUpper(t.Tier))

	b.WriteString("**Skor per Dimensi:**\n")
	for _, s := range t.Scores {
		fmt.Fprintf(&b, "- %s: %d (%.0f%%)\n", s.Dimension, s.Total, s.Percentage)
	}

	b.WriteString("\n**Detail Jawaban:**\n")
	for _, l := range t.Lines {
		fmt.Fprintf(&b, "- Kategori: %s\n  Pertanyaan: %s\n  Jawaban: %s\n  Skor: %s\n\n",
			l.Category, l.QuestionText, l.AnswerText, formatPoints(l.Points))
	}

	b.WriteString("Berdasarkan data di atas, berikan analisis mendalam tentang kepribadian, bakat, dan potensi pengguna ini. ")
	b.WriteString("Sertakan rekomendasi karir yang spesifik dan tips praktis yang bisa langsung diterapkan.\n\n")
	b.WriteString("Penting: Jawab dalam format JSON yang valid seperti yang diminta di system message.")
	return b.String()
}

func formatPoints(points map[string]int) string {
	if len(points) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(points))
	for k := range points {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, points[k]))
	}
	return strings.Join(parts, ", ")
}
