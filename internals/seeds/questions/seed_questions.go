package questions

import (
	_ "embed"
	"fmt"
	"log"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/tests/questions/model"
	"newmeclass_backend/internals/features/tests/scoring"
)

//go:embed questions.yaml
var defaultCatalog []byte

type QuestionSeed struct {
	Code     string           `yaml:"code"`
	Tier     string           `yaml:"tier"`
	Category string           `yaml:"category"`
	Type     string           `yaml:"type"`
	Order    int              `yaml:"order"`
	Text     string           `yaml:"text"`
	Options  []scoring.Option `yaml:"options"`
}

type catalogFile struct {
	Questions []QuestionSeed `yaml:"questions"`
}

// Parse membaca katalog YAML dan cek isi minimal tiap soal.
func Parse(raw []byte) ([]QuestionSeed, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("gagal decode YAML: %w", err)
	}

	seen := map[string]bool{}
	for i, q := range f.Questions {
		code := strings.TrimSpace(q.Code)
		switch {
		case code == "":
			return nil, fmt.Errorf("soal #%d: code kosong", i+1)
		case seen[code]:
			return nil, fmt.Errorf("soal %s: code duplikat", code)
		case !model.IsValidTier(q.Tier):
			return nil, fmt.Errorf("soal %s: tier %q tidak dikenal", code, q.Tier)
		case strings.TrimSpace(q.Text) == "":
			return nil, fmt.Errorf("soal %s: text kosong", code)
		case len(q.Options) < 2:
			return nil, fmt.Errorf("soal %s: minimal 2 opsi", code)
		}
		seen[code] = true
		if q.Type == "" {
			f.Questions[i].Type = model.TypeMultipleChoice
		}
		f.Questions[i].Code = code
	}
	return f.Questions, nil
}

// SeedQuestions: upsert per question_code, soal yang sudah ada diperbarui isinya.
func SeedQuestions(db *gorm.DB, raw []byte) (created, updated int, err error) {
	seeds, err := Parse(raw)
	if err != nil {
		return 0, 0, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, s := range seeds {
			code := s.Code
			var existing model.QuestionModel
			res := tx.Unscoped().Where("question_code = ?", code).Limit(1).Find(&existing)
			if res.Error != nil {
				return res.Error
			}

			if res.RowsAffected == 0 {
				row := model.QuestionModel{
					QuestionCode:       &code,
					QuestionText:       s.Text,
					QuestionType:       s.Type,
					QuestionCategory:   s.Category,
					QuestionTier:       s.Tier,
					QuestionOptions:    datatypes.JSONSlice[scoring.Option](s.Options),
					QuestionIsRequired: true,
					QuestionIsActive:   true,
					QuestionOrder:      s.Order,
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("insert %s: %w", code, err)
				}
				log.Printf("✅ Berhasil insert soal '%s'", code)
				created++
				continue
			}

			existing.QuestionText = s.Text
			existing.QuestionType = s.Type
			existing.QuestionCategory = s.Category
			existing.QuestionTier = s.Tier
			existing.QuestionOptions = datatypes.JSONSlice[scoring.Option](s.Options)
			existing.QuestionOrder = s.Order
			existing.QuestionDeletedAt = gorm.DeletedAt{}
			if err := tx.Unscoped().Save(&existing).Error; err != nil {
				return fmt.Errorf("update %s: %w", code, err)
			}
			log.Printf("ℹ️ Soal '%s' sudah ada, diperbarui", code)
			updated++
		}
		return nil
	})
	return created, updated, err
}

// SeedDefaultQuestions memakai katalog yang ikut ter-embed di binary.
func SeedDefaultQuestions(db *gorm.DB) (int, int, error) {
	return SeedQuestions(db, defaultCatalog)
}
