package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newmeclass_backend/internals/features/tests/scoring"
)

type fakeLLM struct {
	out   Outcome
	calls int
	got   Transcript
}

func (f *fakeLLM) Classify(_ context.Context, t Transcript) Outcome {
	f.calls++
	f.got = t
	return f.out
}

func classifierInput() Input {
	return Input{
		UserName: "Sari",
		Tier:     "free",
		Answers: []scoring.Answer{
			{QuestionID: "q1", SelectedValue: "a"},
			{QuestionID: "q2", SelectedValue: "b"},
		},
		Catalog: []scoring.Question{
			{ID: "q1", Text: "Dalam situasi sosial", Category: "personality_preview", Options: []scoring.Option{
				{Value: "a", Label: "Banyak orang", DimensionScores: map[string]int{"extrovert": 4, "api": 3}},
			}},
			{ID: "q2", Text: "Saat ada masalah", Category: "personality_preview", Options: []scoring.Option{
				{Value: "b", Label: "Langsung bertindak", DimensionScores: map[string]int{"api": 4}},
			}},
		},
	}
}

func newClassifier(llm LLM) *Classifier {
	return NewClassifier(scoring.NewEngine(scoring.DefaultTemplates(), 4), llm)
}

func TestClassifier_RulesOnly(t *testing.T) {
	c := newClassifier(nil)
	assert.False(t, c.UsesModel())

	cls, err := c.Classify(context.Background(), classifierInput())
	require.NoError(t, err)
	assert.Equal(t, SourceRules, cls.Source)
	assert.Equal(t, "EXTROVERT", cls.PersonalityType)
	assert.Equal(t, "API", cls.DominantElement)
	assert.Equal(t, 87.5, cls.ElementScores["API"].Percentage)
	assert.Equal(t, "SANGAT POTENSIAL", cls.DominantType)
	require.NotEmpty(t, cls.Scores)
	assert.Equal(t, "api", cls.Scores[0].Dimension)
}

func TestClassifier_FallsBackWhenModelFails(t *testing.T) {
	llm := &fakeLLM{out: Failed(errors.New("boom"))}
	cls, err := newClassifier(llm).Classify(context.Background(), classifierInput())
	require.NoError(t, err)
	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, SourceRules, cls.Source)
}

func TestClassifier_UsesModelResult(t *testing.T) {
	llm := &fakeLLM{out: Succeeded(Classification{Source: SourceAI, PersonalityType: "AMBIVERT", DominantElement: "KAYU"})}
	cls, err := newClassifier(llm).Classify(context.Background(), classifierInput())
	require.NoError(t, err)

	assert.Equal(t, SourceAI, cls.Source)
	assert.Equal(t, "KAYU", cls.DominantElement)
	assert.NotEmpty(t, cls.Scores, "engine scores attached to model result")

	require.Len(t, llm.got.Lines, 2)
	assert.Equal(t, "Banyak orang", llm.got.Lines[0].AnswerText)
	assert.Equal(t, "Sari", llm.got.UserName)
}

func TestClassifier_NoValidAnswersSkipsModel(t *testing.T) {
	llm := &fakeLLM{out: Succeeded(Classification{})}
	in := classifierInput()
	in.Answers = []scoring.Answer{{QuestionID: "missing", SelectedValue: "a"}}

	_, err := newClassifier(llm).Classify(context.Background(), in)
	assert.ErrorIs(t, err, scoring.ErrNoValidAnswers)
	assert.Equal(t, 0, llm.calls)
}

func TestClassifier_TemplateMissingWithoutModel(t *testing.T) {
	in := classifierInput()
	in.Catalog[1].Options[0].DimensionScores = map[string]int{"analitik": 20}

	_, err := newClassifier(nil).Classify(context.Background(), in)
	assert.ErrorIs(t, err, scoring.ErrClassificationNotFound)

	llm := &fakeLLM{out: Succeeded(Classification{Source: SourceAI})}
	cls, err := newClassifier(llm).Classify(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, SourceAI, cls.Source)
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, "Sangat Potensial", BandFor(80))
	assert.Equal(t, "Berkembang Baik", BandFor(79.9))
	assert.Equal(t, "Penuh Potensi", BandFor(40))
	assert.Equal(t, "Unik", BandFor(12.5))
}

func TestEnergyType(t *testing.T) {
	assert.Equal(t, "INTROVERT", energyType(map[string]int{"introvert": 5, "extrovert": 2}))
	assert.Equal(t, "EXTROVERT", energyType(map[string]int{"extrovert": 1}))
	assert.Equal(t, "AMBIVERT", energyType(map[string]int{"introvert": 3, "extrovert": 3}))
	assert.Equal(t, "AMBIVERT", energyType(map[string]int{}))
}
