package repository

import (
	"context"

	"gorm.io/gorm"

	"newmeclass_backend/internals/features/tests/questions/model"
	"newmeclass_backend/internals/features/tests/scoring"
)

// Catalog: sumber soal aktif untuk scoring (per tier).
type Catalog struct {
	DB *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{DB: db}
}

func (c *Catalog) Questions(ctx context.Context, tier string) ([]scoring.Question, error) {
	rows, err := ListActive(c.DB.WithContext(ctx), tier, "")
	if err != nil {
		return nil, err
	}
	out := make([]scoring.Question, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToScoring())
	}
	return out, nil
}

// ListActive: soal aktif, urut question_order. tier/category kosong = semua.
func ListActive(db *gorm.DB, tier, category string) ([]model.QuestionModel, error) {
	q := db.Model(&model.QuestionModel{}).Where("question_is_active = ?", true)
	if tier != "" {
		q = q.Where("question_tier = ?", tier)
	}
	if category != "" {
		q = q.Where("question_category = ?", category)
	}
	var rows []model.QuestionModel
	err := q.Order("question_order ASC, question_created_at ASC").Find(&rows).Error
	return rows, err
}

func Categories(db *gorm.DB) ([]string, error) {
	var cats []string
	err := db.Model(&model.QuestionModel{}).
		Distinct("question_category").
		Order("question_category ASC").
		Pluck("question_category", &cats).Error
	return cats, err
}

// ListAll: termasuk soal nonaktif & terhapus (untuk menampilkan jawaban lama).
func ListAll(db *gorm.DB, tier string) ([]model.QuestionModel, error) {
	q := db.Unscoped().Model(&model.QuestionModel{})
	if tier != "" {
		q = q.Where("question_tier = ?", tier)
	}
	var rows []model.QuestionModel
	err := q.Order("question_order ASC").Find(&rows).Error
	return rows, err
}
