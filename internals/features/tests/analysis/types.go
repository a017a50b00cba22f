package analysis

import "newmeclass_backend/internals/features/tests/scoring"

const (
	SourceAI    = "ai"
	SourceRules = "rules"
)

// Classification: bentuk hasil akhir yang disimpan & dikirim ke client.
// Field mengikuti skema JSON yang diminta ke model.
type Classification struct {
	Source                string                  `json:"source"`
	PersonalityType       string                  `json:"personalityType"`
	DominantType          string                  `json:"dominantType"`
	DominantElement       string                  `json:"dominantElement"`
	ElementScores         map[string]ElementScore `json:"elementScores"`
	Summary               string                  `json:"summary"`
	Kepribadian           []string                `json:"kepribadian,omitempty"`
	CiriKhas              []string                `json:"ciriKhas,omitempty"`
	Karakter              []string                `json:"karakter,omitempty"`
	KekuatanJatidiri      *KekuatanJatidiri       `json:"kekuatanJatidiri,omitempty"`
	KompilasiAdaptasi     []string                `json:"kompilasiAdaptasi,omitempty"`
	Strengths             []string                `json:"strengths"`
	AreasToImprove        []string                `json:"areasToImprove"`
	CareerRecommendations []string                `json:"careerRecommendations"`
	Tips                  []string                `json:"tips"`
	DetailedAnalysis      DetailedAnalysis        `json:"detailedAnalysis"`

	// diisi dari engine (dua jalur)
	Scores []scoring.DimensionScore `json:"scores,omitempty"`
}

type ElementScore struct {
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
}

type KekuatanJatidiri struct {
	Kehidupan  string `json:"kehidupan"`
	Kesehatan  string `json:"kesehatan"`
	Kontribusi string `json:"kontribusi"`
	Kekhasan   string `json:"kekhasan"`
	Kharisma   string `json:"kharisma"`
}

type DetailedAnalysis struct {
	Personality string `json:"personality"`
	Talent      string `json:"talent"`
	Motivation  string `json:"motivation"`
}

/* ===============================
   Transcript (input ke model)
=================================*/

type TranscriptLine struct {
	Category     string
	QuestionText string
	AnswerText   string
	Points       map[string]int
}

type Transcript struct {
	UserName string
	Tier     string
	Lines    []TranscriptLine
	Scores   []scoring.DimensionScore
}

/* ===============================
   Messages API wire types
=================================*/

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Role    string    `json:"role"`
	Content []content `json:"content"`
	Model   string    `json:"model"`
}

type content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
