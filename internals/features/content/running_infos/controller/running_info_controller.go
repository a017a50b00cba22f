package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/content/running_infos/dto"
	"newmeclass_backend/internals/features/content/running_infos/model"
	helper "newmeclass_backend/internals/helpers"
)

var validate = validator.New()

type RunningInfoController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewRunningInfoController(db *gorm.DB) *RunningInfoController {
	return &RunningInfoController{DB: db, Now: time.Now}
}

var errEndBeforeStart = fiber.NewError(fiber.StatusBadRequest, "Tanggal selesai harus setelah tanggal mulai")

func checkWindow(m *model.RunningInfoModel) error {
	if m.RunningInfoStartDate != nil && m.RunningInfoEndDate != nil &&
		m.RunningInfoEndDate.Before(*m.RunningInfoStartDate) {
		return errEndBeforeStart
	}
	return nil
}

func (ctrl *RunningInfoController) find(c *fiber.Ctx) (*model.RunningInfoModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	var m model.RunningInfoModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "running_info_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Informasi tidak ditemukan")
		}
		return nil, err
	}
	return &m, nil
}

// GET /api/public/running-info: aktif & dalam jendela waktu, prioritas tertinggi dulu
func (ctrl *RunningInfoController) ListActive(c *fiber.Ctx) error {
	var rows []model.RunningInfoModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("running_info_is_active = ?", true).
		Order("running_info_priority DESC, running_info_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil informasi berjalan")
	}

	// jendela waktu dicek di sini, format kolom waktu beda antar driver
	now := ctrl.Now()
	out := make([]model.RunningInfoModel, 0, len(rows))
	for _, r := range rows {
		if r.VisibleAt(now) {
			out = append(out, r)
		}
	}
	return helper.JsonOK(c, "Informasi berjalan", out)
}

// GET /api/a/running-info
func (ctrl *RunningInfoController) ListAll(c *fiber.Ctx) error {
	var rows []model.RunningInfoModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("running_info_priority DESC, running_info_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil informasi berjalan")
	}
	return helper.JsonOK(c, "Semua informasi berjalan", rows)
}

// POST /api/a/running-info
func (ctrl *RunningInfoController) Create(c *fiber.Ctx) error {
	var req dto.CreateRunningInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m := req.ToModel()
	if err := checkWindow(&m); err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat informasi berjalan")
	}
	return helper.JsonCreated(c, "Informasi berjalan berhasil dibuat", m)
}

// PUT /api/a/running-info/:id
func (ctrl *RunningInfoController) Update(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateRunningInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	req.Apply(m)
	if err := checkWindow(m); err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui informasi")
	}
	return helper.JsonUpdated(c, "Informasi berhasil diupdate", m)
}

// DELETE /api/a/running-info/:id
func (ctrl *RunningInfoController) Delete(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus informasi")
	}
	return helper.JsonDeleted(c, "Informasi berhasil dihapus", fiber.Map{"running_info_id": m.RunningInfoID})
}
