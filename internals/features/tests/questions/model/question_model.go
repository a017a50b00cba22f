package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/tests/scoring"
)

const (
	TierFree = "free"
	TierPaid = "paid"

	TypeMultipleChoice = "multiple_choice"
	TypeRating         = "rating"
	TypeYesNo          = "yes_no"
)

var DefaultCategories = []string{"personality", "talent", "skills", "interest"}

func IsValidTier(t string) bool {
	return t == TierFree || t == TierPaid
}

type QuestionModel struct {
	QuestionID         uuid.UUID                           `gorm:"column:question_id;type:uuid;primaryKey" json:"question_id"`
	QuestionCode       *string                             `gorm:"column:question_code;size:50;uniqueIndex" json:"question_code,omitempty"`
	QuestionText       string                              `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionType       string                              `gorm:"column:question_type;type:varchar(30);not null;default:'multiple_choice'" json:"question_type"`
	QuestionCategory   string                              `gorm:"column:question_category;size:50;not null;index" json:"question_category"`
	QuestionTier       string                              `gorm:"column:question_tier;type:varchar(10);not null;default:'free';index" json:"question_tier"`
	QuestionOptions    datatypes.JSONSlice[scoring.Option] `gorm:"column:question_options" json:"question_options"`
	QuestionIsRequired bool                                `gorm:"column:question_is_required;not null;default:true" json:"question_is_required"`
	QuestionIsActive   bool                                `gorm:"column:question_is_active;not null;default:true;index" json:"question_is_active"`
	QuestionOrder      int                                 `gorm:"column:question_order;not null;default:0" json:"question_order"`

	QuestionCreatedAt time.Time      `gorm:"column:question_created_at;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt time.Time      `gorm:"column:question_updated_at;autoUpdateTime" json:"question_updated_at"`
	QuestionDeletedAt gorm.DeletedAt `gorm:"column:question_deleted_at;index" json:"-"`
}

func (QuestionModel) TableName() string {
	return "questions"
}

func (m *QuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuestionID == uuid.Nil {
		m.QuestionID = uuid.New()
	}
	return nil
}

// ToScoring: bentuk yang dipakai scoring engine.
func (m QuestionModel) ToScoring() scoring.Question {
	return scoring.Question{
		ID:       m.QuestionID.String(),
		Text:     m.QuestionText,
		Category: m.QuestionCategory,
		Options:  []scoring.Option(m.QuestionOptions),
	}
}
