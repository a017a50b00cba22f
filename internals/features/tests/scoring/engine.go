package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// DefaultMaxPointsPerQuestion dipakai kalau config SCORING_MAX_POINTS_PER_QUESTION kosong / invalid.
const DefaultMaxPointsPerQuestion = 4

var (
	ErrNoValidAnswers         = errors.New("no valid answers provided")
	ErrClassificationNotFound = errors.New("classification not found")
)

/* ===============================
   Input types
=================================*/

type Option struct {
	Value           string         `json:"value" yaml:"value"`
	Label           string         `json:"label" yaml:"label"`
	DimensionScores map[string]int `json:"dimension_scores,omitempty" yaml:"scores,omitempty"`
	Score           int            `json:"score,omitempty" yaml:"score,omitempty"`
}

// contribution: dimensionScores kalau ada, kalau tidak flat score masuk ke kategori soal.
func (o Option) contribution(category string) map[string]int {
	if len(o.DimensionScores) > 0 {
		return o.DimensionScores
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil
	}
	return map[string]int{category: o.Score}
}

type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category string   `json:"category"`
	Options  []Option `json:"options"`
}

func (q Question) option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

type Answer struct {
	QuestionID    string `json:"question_id" validate:"required"`
	SelectedValue string `json:"selected_value" validate:"required"`
}

/* ===============================
   Output
=================================*/

type DimensionScore struct {
	Dimension  string  `json:"dimension"`
	Total      int     `json:"total"`
	Answered   int     `json:"answered"`
	Percentage float64 `json:"percentage"`
}

type Result struct {
	Totals      map[string]int     `json:"totals"`
	Answered    map[string]int     `json:"answered"`
	Percentages map[string]float64 `json:"percentages"`
	Dominant    string             `json:"dominant"`
	Template    Template           `json:"template"`
}

// Ranked mengembalikan dimensi urut total desc (tie: nama asc).
func (r Result) Ranked() []DimensionScore {
	out := make([]DimensionScore, 0, len(r.Totals))
	for dim, total := range r.Totals {
		out = append(out, DimensionScore{
			Dimension:  dim,
			Total:      total,
			Answered:   r.Answered[dim],
			Percentage: r.Percentages[dim],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Dimension < out[j].Dimension
	})
	return out
}

/* ===============================
   Engine
=================================*/

type TemplateStore interface {
	Template(label string) (Template, bool)
}

type Engine struct {
	templates      TemplateStore
	perQuestionMax int
}

func NewEngine(templates TemplateStore, perQuestionMax int) *Engine {
	if perQuestionMax <= 0 {
		perQuestionMax = DefaultMaxPointsPerQuestion
	}
	return &Engine{templates: templates, perQuestionMax: perQuestionMax}
}

// Score menghitung total per dimensi, persentase dan label dominan.
// Pasangan jawaban yang soal/opsinya tidak ditemukan dilewati.
func (e *Engine) Score(answers []Answer, catalog []Question) (Result, error) {
	totals, answered := e.accumulate(answers, catalog)
	if len(totals) == 0 {
		return Result{}, ErrNoValidAnswers
	}

	dominant := Dominant(totals)
	percentages := make(map[string]float64, len(totals))
	for dim, total := range totals {
		percentages[dim] = Percentage(total, answered[dim], e.perQuestionMax)
	}

	tpl, ok := e.templates.Template(dominant)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrClassificationNotFound, dominant)
	}

	return Result{
		Totals:      totals,
		Answered:    answered,
		Percentages: percentages,
		Dominant:    dominant,
		Template:    tpl,
	}, nil
}

func (e *Engine) accumulate(answers []Answer, catalog []Question) (map[string]int, map[string]int) {
	byID := make(map[string]Question, len(catalog))
	for _, q := range catalog {
		byID[q.ID] = q
	}

	totals := map[string]int{}
	answered := map[string]int{}
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		opt, ok := q.option(a.SelectedValue)
		if !ok {
			continue
		}
		for dim, pts := range opt.contribution(q.Category) {
			totals[dim] += pts
			answered[dim]++
		}
	}
	return totals, answered
}

// Dominant: total tertinggi; kalau seri, nama dimensi terkecil secara leksikal.
func Dominant(totals map[string]int) string {
	best := ""
	first := true
	for dim, total := range totals {
		if first || total > totals[best] || (total == totals[best] && dim < best) {
			best = dim
			first = false
		}
	}
	return best
}

// Percentage = total / (answered * perQuestionMax) * 100, di-clamp [0,100], 1 desimal.
func Percentage(total, answered, perQuestionMax int) float64 {
	if answered <= 0 || perQuestionMax <= 0 {
		return 0
	}
	p := float64(total) / float64(answered*perQuestionMax) * 100
	p = math.Max(0, math.Min(100, p))
	return math.Round(p*10) / 10
}
