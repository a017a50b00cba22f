package scoring

import (
	"sort"
	"strings"
)

type Template struct {
	Label                 string   `json:"label"`
	Type                  string   `json:"type"`
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	Strengths             []string `json:"strengths"`
	AreasToImprove        []string `json:"areasToImprove"`
	CareerRecommendations []string `json:"careerRecommendations"`
	Tips                  []string `json:"tips"`
	Summary               string   `json:"summary"`
}

// StaticTemplates: tabel template deskriptif, key lower-case.
type StaticTemplates map[string]Template

func (s StaticTemplates) Template(label string) (Template, bool) {
	t, ok := s[strings.ToLower(strings.TrimSpace(label))]
	return t, ok
}

func (s StaticTemplates) Labels() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var defaultTips = []string{
	"Luangkan 30 menit sehari untuk belajar hal baru",
	"Bergabung dengan komunitas yang sesuai minat",
	"Praktikkan skill yang ingin dikembangkan secara rutin",
	"Cari mentor atau role model di bidang yang diminati",
	"Jaga keseimbangan antara kerja dan istirahat",
}

// DefaultTemplates: 5 element, tipe energi sosial, dan kategori umum.
func DefaultTemplates() StaticTemplates {
	return StaticTemplates{
		// =============================
		// 🌳 5 Element
		// =============================
		"kayu": {
			Label:       "kayu",
			Type:        "KAYU",
			Title:       "SI KREATIF",
			Description: "Inovatif, visioner, artistik",
			Strengths: []string{
				"Penuh ide baru dan orisinal",
				"Mampu melihat peluang jangka panjang",
				"Peka terhadap estetika",
				"Senang bertumbuh dan belajar",
			},
			AreasToImprove: []string{
				"Menuntaskan ide sampai eksekusi",
				"Fokus pada detail teknis",
				"Mengelola ekspektasi terhadap diri sendiri",
			},
			CareerRecommendations: []string{
				"Creative Director",
				"Desainer Produk",
				"Arsitek",
				"Content Creator",
				"Entrepreneur",
			},
			Tips:    defaultTips,
			Summary: "Anda adalah pribadi kreatif yang selalu mencari cara baru. Ide-ide segar adalah kekuatan utama Anda.",
		},
		"api": {
			Label:       "api",
			Type:        "API",
			Title:       "SI PERASA",
			Description: "Passionate, energik, ekspresif",
			Strengths: []string{
				"Semangat dan energi yang menular",
				"Berani mengambil tindakan cepat",
				"Ekspresif dalam menyampaikan gagasan",
				"Mampu memotivasi orang lain",
			},
			AreasToImprove: []string{
				"Mengelola emosi saat tertekan",
				"Lebih sabar dalam proses",
				"Mendengarkan sebelum bereaksi",
			},
			CareerRecommendations: []string{
				"Sales Leader",
				"Public Speaker",
				"Event Organizer",
				"Marketing Strategist",
				"Entrepreneur",
			},
			Tips:    defaultTips,
			Summary: "Anda memiliki semangat yang membara dan mudah menggerakkan orang lain. Energi adalah kekuatan utama Anda.",
		},
		"tanah": {
			Label:       "tanah",
			Type:        "TANAH",
			Title:       "SI STABIL",
			Description: "Konsisten, praktis, dapat diandalkan",
			Strengths: []string{
				"Konsisten menyelesaikan tugas",
				"Terstruktur dan sistematis",
				"Dapat diandalkan tim",
				"Tenang menghadapi tekanan",
			},
			AreasToImprove: []string{
				"Lebih fleksibel terhadap perubahan",
				"Berani keluar dari zona nyaman",
				"Lebih spontan dalam situasi tertentu",
			},
			CareerRecommendations: []string{
				"Project Manager",
				"Akuntan atau Auditor",
				"Operations Manager",
				"Quality Assurance",
				"Administrator",
			},
			Tips:    defaultTips,
			Summary: "Anda adalah pribadi yang stabil dan bisa diandalkan. Konsistensi adalah ciri khas Anda.",
		},
		"angin": {
			Label:       "angin",
			Type:        "ANGIN",
			Title:       "SI SOSIAL",
			Description: "Adaptif, komunikatif, fleksibel",
			Strengths: []string{
				"Mudah bergaul dan membangun relasi",
				"Komunikatif",
				"Cepat beradaptasi dengan situasi baru",
				"Kolaboratif dalam tim",
			},
			AreasToImprove: []string{
				"Konsistensi dalam komitmen",
				"Fokus pada satu tujuan",
				"Mengelola batasan personal",
			},
			CareerRecommendations: []string{
				"Public Relations",
				"Community Manager",
				"Customer Success Manager",
				"Jurnalis",
				"Diplomat",
			},
			Tips:    defaultTips,
			Summary: "Anda memiliki jiwa sosial yang kuat dan mudah beradaptasi. Komunikasi adalah kekuatan utama Anda.",
		},
		"air": {
			Label:       "air",
			Type:        "AIR",
			Title:       "SI ADAPTIF",
			Description: "Bijaksana, intuitif, reflektif",
			Strengths: []string{
				"Kemampuan introspeksi yang kuat",
				"Intuisi yang tajam",
				"Analisis yang mendalam",
				"Bijaksana dalam mengambil keputusan",
			},
			AreasToImprove: []string{
				"Lebih berani mengambil risiko",
				"Meningkatkan kepercayaan diri",
				"Lebih asertif dalam menyampaikan pendapat",
			},
			CareerRecommendations: []string{
				"Psikolog atau Konselor",
				"Peneliti atau Analis",
				"Penulis",
				"Data Analyst",
				"Trainer atau Coach",
			},
			Tips:    defaultTips,
			Summary: "Anda adalah pribadi yang bijaksana dan reflektif. Kedalaman berpikir adalah kekuatan utama Anda.",
		},

		// =============================
		// 🔋 Energi sosial
		// =============================
		"introvert": {
			Label:       "introvert",
			Type:        "INTROVERT",
			Title:       "Introvert",
			Description: "Mengisi energi dari waktu sendiri dan refleksi",
			Strengths: []string{
				"Pendengar yang baik",
				"Fokus dan tekun",
				"Pemikir yang mendalam",
			},
			AreasToImprove: []string{
				"Lebih aktif dalam diskusi kelompok",
				"Membangun jaringan secara bertahap",
			},
			CareerRecommendations: []string{
				"Software Engineer",
				"Peneliti",
				"Penulis",
				"Data Analyst",
			},
			Tips:    defaultTips,
			Summary: "Anda mengisi energi dari ketenangan dan refleksi. Fokus adalah kekuatan utama Anda.",
		},
		"extrovert": {
			Label:       "extrovert",
			Type:        "EXTROVERT",
			Title:       "Extrovert",
			Description: "Mengisi energi dari interaksi dengan orang lain",
			Strengths: []string{
				"Percaya diri di depan umum",
				"Mudah membangun relasi",
				"Energik dan antusias",
			},
			AreasToImprove: []string{
				"Memberi ruang bagi orang lain berbicara",
				"Meluangkan waktu untuk refleksi",
			},
			CareerRecommendations: []string{
				"Sales",
				"Public Relations",
				"Event Organizer",
				"Presenter",
			},
			Tips:    defaultTips,
			Summary: "Anda bersemangat saat bersama orang lain. Interaksi sosial adalah kekuatan utama Anda.",
		},
		"ambivert": {
			Label:       "ambivert",
			Type:        "AMBIVERT",
			Title:       "Ambivert",
			Description: "Seimbang antara waktu sendiri dan interaksi sosial",
			Strengths: []string{
				"Fleksibel di berbagai situasi",
				"Bisa memimpin dan mendengarkan",
				"Mudah menyesuaikan gaya komunikasi",
			},
			AreasToImprove: []string{
				"Mengenali kapan perlu mengisi energi",
				"Konsisten dalam memilih peran",
			},
			CareerRecommendations: []string{
				"Konsultan",
				"HR Manager",
				"Product Manager",
				"Guru atau Dosen",
			},
			Tips:    defaultTips,
			Summary: "Anda mampu menyeimbangkan dunia dalam dan luar diri. Fleksibilitas adalah kekuatan utama Anda.",
		},

		// =============================
		// 📚 Kategori
		// =============================
		"personality": {
			Label: "personality",
			Type:  "Analitis & Reflektif",
			Title: "Kepribadian",
			Strengths: []string{
				"Kemampuan introspeksi yang kuat",
				"Pengambilan keputusan yang matang",
				"Kepekaan terhadap perasaan diri dan orang lain",
				"Kemampuan beradaptasi dengan situasi",
			},
			AreasToImprove: []string{
				"Lebih berani mengambil risiko",
				"Meningkatkan kepercayaan diri",
				"Lebih asertif dalam menyampaikan pendapat",
			},
			CareerRecommendations: []string{
				"Psikolog atau Konselor",
				"Peneliti atau Analis",
				"Penulis atau Content Creator",
				"Human Resources",
				"Trainer atau Coach",
			},
			Tips:    defaultTips,
			Summary: "Anda memiliki kepribadian yang mendalam dan reflektif. Kemampuan memahami diri sendiri adalah kekuatan utama Anda.",
		},
		"talent": {
			Label: "talent",
			Type:  "Kreatif & Inovatif",
			Title: "Bakat",
			Strengths: []string{
				"Bakat kepemimpinan yang natural",
				"Kemampuan menciptakan ide baru",
				"Skill dalam memecahkan masalah kompleks",
				"Kemampuan memotivasi tim",
			},
			AreasToImprove: []string{
				"Lebih sabar dalam proses",
				"Mendengarkan pendapat orang lain",
				"Fokus pada detail",
			},
			CareerRecommendations: []string{
				"Entrepreneur atau Founder",
				"Creative Director",
				"Product Manager",
				"Konsultan Bisnis",
				"Marketing Strategist",
			},
			Tips:    defaultTips,
			Summary: "Anda memiliki bakat alami dalam kepemimpinan dan inovasi. Ide-ide kreatif adalah kekuatan utama Anda.",
		},
		"skills": {
			Label: "skills",
			Type:  "Terorganisir & Sistematis",
			Title: "Keterampilan",
			Strengths: []string{
				"Kemampuan manajemen waktu yang baik",
				"Detail-oriented dan teliti",
				"Konsisten dalam menyelesaikan tugas",
				"Kemampuan komunikasi yang efektif",
			},
			AreasToImprove: []string{
				"Lebih fleksibel terhadap perubahan",
				"Berani keluar dari zona nyaman",
				"Lebih spontan dalam situasi tertentu",
			},
			CareerRecommendations: []string{
				"Project Manager",
				"Akuntan atau Auditor",
				"Data Analyst",
				"Operations Manager",
				"Quality Assurance",
			},
			Tips:    defaultTips,
			Summary: "Anda memiliki kemampuan organisasi yang luar biasa. Sistematis dan terstruktur adalah ciri khas Anda.",
		},
		"interest": {
			Label: "interest",
			Type:  "Sosial & Empatik",
			Title: "Minat",
			Strengths: []string{
				"Empati yang tinggi",
				"Kemampuan membangun relasi",
				"Peduli terhadap kesejahteraan orang lain",
				"Kemampuan kolaborasi tim",
			},
			AreasToImprove: []string{
				"Lebih tegas dalam mengambil keputusan",
				"Mengelola batasan personal",
				"Fokus pada tujuan pribadi",
			},
			CareerRecommendations: []string{
				"Pekerja Sosial",
				"Guru atau Dosen",
				"Customer Success Manager",
				"Community Manager",
				"Healthcare Professional",
			},
			Tips:    defaultTips,
			Summary: "Anda memiliki jiwa sosial yang kuat. Kemampuan memahami dan membantu orang lain adalah kekuatan utama Anda.",
		},
	}
}
