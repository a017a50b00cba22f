package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/tests/questions/dto"
	"newmeclass_backend/internals/features/tests/questions/model"
	"newmeclass_backend/internals/features/tests/questions/repository"
	helper "newmeclass_backend/internals/helpers"
)

var validate = validator.New()

type QuestionController struct {
	DB *gorm.DB
}

func NewQuestionController(db *gorm.DB) *QuestionController {
	return &QuestionController{DB: db}
}

func parseQuestionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID soal tidak valid")
	}
	return id, nil
}

/* =========================================================
   PUBLIC
========================================================= */

// GET /api/public/questions?tier=free|paid&category=
func (ctrl *QuestionController) ListPublic(c *fiber.Ctx) error {
	tier := strings.ToLower(strings.TrimSpace(c.Query("tier")))
	if tier != "" && !model.IsValidTier(tier) {
		return helper.JsonError(c, fiber.StatusBadRequest, "tier harus free atau paid")
	}
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))

	rows, err := repository.ListActive(ctrl.DB.WithContext(c.UserContext()), tier, category)
	if err != nil {
		log.Printf("[ERROR] ❌ Gagal ambil soal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil soal")
	}
	return helper.JsonOK(c, "Daftar soal", dto.ToPublicList(rows))
}

/* =========================================================
   ADMIN
========================================================= */

// GET /api/a/questions?tier=&category=&is_active=&q=&page=&per_page=
func (ctrl *QuestionController) ListAdmin(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)
	sort := helper.ParseSort(c, "order", "asc")

	tx := ctrl.DB.Model(&model.QuestionModel{})
	if tier := c.Query("tier"); tier != "" {
		tx = tx.Where("question_tier = ?", tier)
	}
	if cat := c.Query("category"); cat != "" {
		tx = tx.Where("question_category = ?", strings.ToLower(cat))
	}
	if v := c.Query("is_active"); v != "" {
		tx = tx.Where("question_is_active = ?", v == "true" || v == "1")
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("LOWER(question_text) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung soal")
	}

	var rows []model.QuestionModel
	if err := tx.Order(sort.OrderClause(map[string]string{
		"order":      "question_order",
		"created_at": "question_created_at",
		"category":   "question_category",
	}, "order")).Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil soal")
	}
	return helper.JsonList(c, "Daftar soal", rows, p.Build(total))
}

// GET /api/a/questions/:id
func (ctrl *QuestionController) GetByID(c *fiber.Ctx) error {
	id, err := parseQuestionID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var m model.QuestionModel
	if err := ctrl.DB.First(&m, "question_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Soal tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil soal")
	}
	return helper.JsonOK(c, "Detail soal", m)
}

// POST /api/a/questions
func (ctrl *QuestionController) Create(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if v, dup := dto.DuplicateOptionValue(req.QuestionOptions); dup {
		return helper.JsonError(c, fiber.StatusBadRequest, "Value opsi duplikat: "+v)
	}

	m := req.ToModel()
	if err := ctrl.DB.Create(&m).Error; err != nil {
		log.Printf("[ERROR] ❌ Gagal membuat soal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat soal")
	}
	return helper.JsonCreated(c, "Soal berhasil dibuat", m)
}

// PUT /api/a/questions/:id
func (ctrl *QuestionController) Update(c *fiber.Ctx) error {
	id, err := parseQuestionID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.QuestionOptions != nil {
		if v, dup := dto.DuplicateOptionValue(*req.QuestionOptions); dup {
			return helper.JsonError(c, fiber.StatusBadRequest, "Value opsi duplikat: "+v)
		}
	}

	var m model.QuestionModel
	if err := ctrl.DB.First(&m, "question_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Soal tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil soal")
	}

	req.Apply(&m)
	if err := ctrl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui soal")
	}
	return helper.JsonUpdated(c, "Soal berhasil diperbarui", m)
}

// DELETE /api/a/questions/:id (soft delete)
func (ctrl *QuestionController) Delete(c *fiber.Ctx) error {
	id, err := parseQuestionID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res := ctrl.DB.Delete(&model.QuestionModel{}, "question_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus soal")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Soal tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Soal berhasil dihapus", fiber.Map{"question_id": id})
}

// GET /api/a/questions/categories
func (ctrl *QuestionController) Categories(c *fiber.Ctx) error {
	cats, err := repository.Categories(ctrl.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kategori")
	}
	if len(cats) == 0 {
		cats = model.DefaultCategories
	}
	return helper.JsonOK(c, "Kategori soal", cats)
}

// PUT /api/a/questions/reorder
func (ctrl *QuestionController) Reorder(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var updated int64
	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		for _, it := range req.Items {
			res := tx.Model(&model.QuestionModel{}).
				Where("question_id = ?", it.QuestionID).
				Update("question_order", it.QuestionOrder)
			if res.Error != nil {
				return res.Error
			}
			updated += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengurutkan soal")
	}
	return helper.JsonUpdated(c, "Urutan soal diperbarui", fiber.Map{"updated": updated})
}
