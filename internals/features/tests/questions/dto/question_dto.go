package dto

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"newmeclass_backend/internals/features/tests/questions/model"
	"newmeclass_backend/internals/features/tests/scoring"
)

/* ===================== REQUEST ===================== */

type OptionRequest struct {
	Value           string         `json:"value" validate:"required,max=50"`
	Label           string         `json:"label" validate:"required"`
	DimensionScores map[string]int `json:"dimension_scores"`
	Score           int            `json:"score" validate:"gte=0"`
}

type CreateQuestionRequest struct {
	QuestionCode       *string         `json:"question_code" validate:"omitempty,max=50"`
	QuestionText       string          `json:"question_text" validate:"required"`
	QuestionType       string          `json:"question_type" validate:"omitempty,oneof=multiple_choice rating yes_no"`
	QuestionCategory   string          `json:"question_category" validate:"required,max=50"`
	QuestionTier       string          `json:"question_tier" validate:"required,oneof=free paid"`
	QuestionOptions    []OptionRequest `json:"question_options" validate:"required,min=1,dive"`
	QuestionIsRequired *bool           `json:"question_is_required"`
	QuestionOrder      int             `json:"question_order"`
}

func toOptions(in []OptionRequest) datatypes.JSONSlice[scoring.Option] {
	out := make(datatypes.JSONSlice[scoring.Option], 0, len(in))
	for _, o := range in {
		out = append(out, scoring.Option{
			Value:           strings.TrimSpace(o.Value),
			Label:           o.Label,
			DimensionScores: o.DimensionScores,
			Score:           o.Score,
		})
	}
	return out
}

// DuplicateOptionValue: value opsi harus unik dalam satu soal.
func DuplicateOptionValue(in []OptionRequest) (string, bool) {
	seen := map[string]struct{}{}
	for _, o := range in {
		v := strings.TrimSpace(o.Value)
		if _, ok := seen[v]; ok {
			return v, true
		}
		seen[v] = struct{}{}
	}
	return "", false
}

func (r CreateQuestionRequest) ToModel() model.QuestionModel {
	m := model.QuestionModel{
		QuestionCode:       r.QuestionCode,
		QuestionText:       strings.TrimSpace(r.QuestionText),
		QuestionType:       r.QuestionType,
		QuestionCategory:   strings.ToLower(strings.TrimSpace(r.QuestionCategory)),
		QuestionTier:       r.QuestionTier,
		QuestionOptions:    toOptions(r.QuestionOptions),
		QuestionIsRequired: true,
		QuestionIsActive:   true,
		QuestionOrder:      r.QuestionOrder,
	}
	if m.QuestionType == "" {
		m.QuestionType = model.TypeMultipleChoice
	}
	if r.QuestionIsRequired != nil {
		m.QuestionIsRequired = *r.QuestionIsRequired
	}
	return m
}

type UpdateQuestionRequest struct {
	QuestionText       *string          `json:"question_text" validate:"omitempty,min=1"`
	QuestionType       *string          `json:"question_type" validate:"omitempty,oneof=multiple_choice rating yes_no"`
	QuestionCategory   *string          `json:"question_category" validate:"omitempty,max=50"`
	QuestionTier       *string          `json:"question_tier" validate:"omitempty,oneof=free paid"`
	QuestionOptions    *[]OptionRequest `json:"question_options" validate:"omitempty,min=1,dive"`
	QuestionIsRequired *bool            `json:"question_is_required"`
	QuestionIsActive   *bool            `json:"question_is_active"`
	QuestionOrder      *int             `json:"question_order"`
}

func (r UpdateQuestionRequest) Apply(m *model.QuestionModel) {
	if r.QuestionText != nil {
		m.QuestionText = strings.TrimSpace(*r.QuestionText)
	}
	if r.QuestionType != nil {
		m.QuestionType = *r.QuestionType
	}
	if r.QuestionCategory != nil {
		m.QuestionCategory = strings.ToLower(strings.TrimSpace(*r.QuestionCategory))
	}
	if r.QuestionTier != nil {
		m.QuestionTier = *r.QuestionTier
	}
	if r.QuestionOptions != nil {
		m.QuestionOptions = toOptions(*r.QuestionOptions)
	}
	if r.QuestionIsRequired != nil {
		m.QuestionIsRequired = *r.QuestionIsRequired
	}
	if r.QuestionIsActive != nil {
		m.QuestionIsActive = *r.QuestionIsActive
	}
	if r.QuestionOrder != nil {
		m.QuestionOrder = *r.QuestionOrder
	}
}

type ReorderItem struct {
	QuestionID    uuid.UUID `json:"question_id" validate:"required"`
	QuestionOrder int       `json:"question_order" validate:"gte=0"`
}

type ReorderRequest struct {
	Items []ReorderItem `json:"items" validate:"required,min=1,dive"`
}

/* ===================== RESPONSE ===================== */

// Opsi untuk publik: tanpa skor (skor dihitung di server).
type PublicOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type PublicQuestion struct {
	QuestionID         uuid.UUID      `json:"question_id"`
	QuestionText       string         `json:"question_text"`
	QuestionType       string         `json:"question_type"`
	QuestionCategory   string         `json:"question_category"`
	QuestionTier       string         `json:"question_tier"`
	QuestionOptions    []PublicOption `json:"question_options"`
	QuestionIsRequired bool           `json:"question_is_required"`
	QuestionOrder      int            `json:"question_order"`
}

func ToPublic(m model.QuestionModel) PublicQuestion {
	opts := make([]PublicOption, 0, len(m.QuestionOptions))
	for _, o := range m.QuestionOptions {
		opts = append(opts, PublicOption{Value: o.Value, Label: o.Label})
	}
	return PublicQuestion{
		QuestionID:         m.QuestionID,
		QuestionText:       m.QuestionText,
		QuestionType:       m.QuestionType,
		QuestionCategory:   m.QuestionCategory,
		QuestionTier:       m.QuestionTier,
		QuestionOptions:    opts,
		QuestionIsRequired: m.QuestionIsRequired,
		QuestionOrder:      m.QuestionOrder,
	}
}

func ToPublicList(rows []model.QuestionModel) []PublicQuestion {
	out := make([]PublicQuestion, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToPublic(r))
	}
	return out
}
