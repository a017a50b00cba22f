package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/tests/analysis"
	"newmeclass_backend/internals/features/tests/scoring"
)

// Satu user hanya boleh punya satu attempt tier free.
const FreeAttemptIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS uq_test_attempts_free_per_user
ON test_attempts (test_attempt_user_id) WHERE test_attempt_tier = 'free'`

// TestAttemptModel: hasil tes yang sudah disubmit, tidak pernah diubah.
type TestAttemptModel struct {
	TestAttemptID            uuid.UUID                                    `gorm:"column:test_attempt_id;type:uuid;primaryKey" json:"test_attempt_id"`
	TestAttemptUserID        uuid.UUID                                    `gorm:"column:test_attempt_user_id;type:uuid;not null;index" json:"test_attempt_user_id"`
	TestAttemptTier          string                                       `gorm:"column:test_attempt_tier;type:varchar(10);not null;index" json:"test_attempt_tier"`
	TestAttemptAnswers       datatypes.JSONSlice[scoring.Answer]          `gorm:"column:test_attempt_answers" json:"test_attempt_answers"`
	TestAttemptResult        datatypes.JSONType[analysis.Classification]  `gorm:"column:test_attempt_result" json:"test_attempt_result"`
	TestAttemptDominantLabel string                                       `gorm:"column:test_attempt_dominant_label;size:50;index" json:"test_attempt_dominant_label"`
	TestAttemptSource        string                                       `gorm:"column:test_attempt_source;type:varchar(10);not null" json:"test_attempt_source"`
	TestAttemptCreatedAt     time.Time                                    `gorm:"column:test_attempt_created_at;autoCreateTime;index" json:"test_attempt_created_at"`
}

func (TestAttemptModel) TableName() string {
	return "test_attempts"
}

func (m *TestAttemptModel) BeforeCreate(tx *gorm.DB) error {
	if m.TestAttemptID == uuid.Nil {
		m.TestAttemptID = uuid.New()
	}
	return nil
}

// EnsureIndexes: index parsial tidak bisa lewat tag gorm.
func EnsureIndexes(db *gorm.DB) error {
	return db.Exec(FreeAttemptIndexSQL).Error
}
