package analysis

import (
	"context"
	"errors"
	"log"

	"newmeclass_backend/internals/features/tests/scoring"
)

type LLM interface {
	Classify(ctx context.Context, t Transcript) Outcome
}

type Input struct {
	UserName string
	Tier     string
	Answers  []scoring.Answer
	Catalog  []scoring.Question
}

// Classifier: engine selalu jalan dulu (validasi + skor), model opsional di atasnya.
type Classifier struct {
	engine *scoring.Engine
	llm    LLM
}

// llm boleh nil: berarti hanya jalur rules.
func NewClassifier(engine *scoring.Engine, llm LLM) *Classifier {
	return &Classifier{engine: engine, llm: llm}
}

func (c *Classifier) UsesModel() bool {
	return c.llm != nil
}

func (c *Classifier) Classify(ctx context.Context, in Input) (Classification, error) {
	res, scoreErr := c.engine.Score(in.Answers, in.Catalog)
	if errors.Is(scoreErr, scoring.ErrNoValidAnswers) {
		return Classification{}, scoreErr
	}

	fallback := func() (Classification, error) {
		if scoreErr != nil {
			return Classification{}, scoreErr
		}
		return FromResult(res), nil
	}

	if c.llm == nil {
		return fallback()
	}

	scores := res.Ranked()
	out := c.llm.Classify(ctx, Transcript{
		UserName: in.UserName,
		Tier:     in.Tier,
		Lines:    transcriptLines(in.Answers, in.Catalog),
		Scores:   scores,
	})
	if !out.OK() {
		log.Printf("[INFO] 🔁 fallback ke klasifikasi rules: %v", out.Err)
	}

	cls, err := out.OrElse(fallback)
	if err != nil {
		return Classification{}, err
	}
	if len(cls.Scores) == 0 {
		cls.Scores = scores
	}
	return cls, nil
}

func transcriptLines(answers []scoring.Answer, catalog []scoring.Question) []TranscriptLine {
	byID := make(map[string]scoring.Question, len(catalog))
	for _, q := range catalog {
		byID[q.ID] = q
	}

	lines := make([]TranscriptLine, 0, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		for _, o := range q.Options {
			if o.Value != a.SelectedValue {
				continue
			}
			points := o.DimensionScores
			if len(points) == 0 && q.Category != "" {
				points = map[string]int{q.Category: o.Score}
			}
			lines = append(lines, TranscriptLine{
				Category:     q.Category,
				QuestionText: q.Text,
				AnswerText:   o.Label,
				Points:       points,
			})
			break
		}
	}
	return lines
}
