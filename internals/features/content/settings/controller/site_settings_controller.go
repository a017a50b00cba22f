package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/content/settings/dto"
	"newmeclass_backend/internals/features/content/settings/service"
	helper "newmeclass_backend/internals/helpers"
)

var validate = validator.New()

type SiteSettingsController struct {
	DB *gorm.DB
}

func NewSiteSettingsController(db *gorm.DB) *SiteSettingsController {
	return &SiteSettingsController{DB: db}
}

// GET /api/public/settings
func (ctrl *SiteSettingsController) GetPublic(c *fiber.Ctx) error {
	s, err := service.Get(ctrl.DB.WithContext(c.UserContext()))
	if err != nil {
		log.Printf("[ERROR] ❌ Gagal ambil site settings: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pengaturan")
	}
	return helper.JsonOK(c, "Pengaturan situs", s.PublicView())
}

// GET /api/a/settings (lengkap, termasuk rekening)
func (ctrl *SiteSettingsController) Get(c *fiber.Ctx) error {
	s, err := service.Get(ctrl.DB.WithContext(c.UserContext()))
	if err != nil {
		log.Printf("[ERROR] ❌ Gagal ambil site settings: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pengaturan")
	}
	return helper.JsonOK(c, "Pengaturan situs", s)
}

// PUT /api/a/settings
func (ctrl *SiteSettingsController) Update(c *fiber.Ctx) error {
	var req dto.UpdateSiteSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	s, err := service.Save(ctrl.DB.WithContext(c.UserContext()), req.ToUpdates())
	if err != nil {
		log.Printf("[ERROR] ❌ Gagal simpan site settings: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan pengaturan")
	}
	log.Printf("[INFO] ✅ Site settings diperbarui (harga tes: %d)", s.TestPrice)
	return helper.JsonUpdated(c, "Pengaturan berhasil disimpan", s)
}
