package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"newmeclass_backend/internals/constants"
	"newmeclass_backend/internals/features/content/banners/dto"
	"newmeclass_backend/internals/features/content/banners/model"
	helper "newmeclass_backend/internals/helpers"
)

var validate = validator.New()

type BannerController struct {
	DB      *gorm.DB
	Storage *helper.LocalStorage
}

func NewBannerController(db *gorm.DB, storage *helper.LocalStorage) *BannerController {
	return &BannerController{DB: db, Storage: storage}
}

func (ctrl *BannerController) findByID(c *fiber.Ctx) (*model.BannerModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID banner tidak valid")
	}
	var b model.BannerModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&b, "banner_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Banner tidak ditemukan")
		}
		return nil, err
	}
	return &b, nil
}

// saveImage: nil fh → "" tanpa error.
func (ctrl *BannerController) saveImage(c *fiber.Ctx) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	if constants.DetectFileTypeFromExt(fh.Filename) != constants.FileTypeImage {
		return "", fiber.NewError(fiber.StatusBadRequest, "File type not allowed")
	}
	url, err := ctrl.Storage.SaveImageAsWebP("banners", fh)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return url, nil
}

// GET /api/public/banners?type=slider|popup
func (ctrl *BannerController) ListActive(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).Where("banner_is_active = ?", true)
	if t := c.Query("type"); t != "" {
		q = q.Where("banner_type = ?", t)
	}
	var rows []model.BannerModel
	if err := q.Order("banner_order ASC, banner_created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil banner")
	}
	return helper.JsonOK(c, "Daftar banner", rows)
}

// GET /api/a/banners?type=&is_active=
func (ctrl *BannerController) ListAdmin(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.BannerModel{})
	if t := c.Query("type"); t != "" {
		q = q.Where("banner_type = ?", t)
	}
	if v := c.Query("is_active"); v != "" {
		q = q.Where("banner_is_active = ?", v == "true" || v == "1")
	}
	var rows []model.BannerModel
	if err := q.Order("banner_order ASC, banner_created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil banner")
	}
	return helper.JsonOK(c, "Daftar banner", rows)
}

// GET /api/a/banners/:id
func (ctrl *BannerController) GetByID(c *fiber.Ctx) error {
	b, err := ctrl.findByID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail banner", b)
}

// POST /api/a/banners (multipart: title, description, link, type, order, image)
func (ctrl *BannerController) Create(c *fiber.Ctx) error {
	var req dto.CreateBannerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	url, err := ctrl.saveImage(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if url == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Gambar banner wajib diupload")
	}

	b := req.ToModel(url)
	if uid, err := helper.GetUserIDFromToken(c); err == nil {
		b.BannerCreatedBy = &uid
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&b).Error; err != nil {
		_ = ctrl.Storage.Delete(url)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat banner")
	}
	return helper.JsonCreated(c, "Banner created successfully", b)
}

// PUT /api/a/banners/:id (multipart, image opsional)
func (ctrl *BannerController) Update(c *fiber.Ctx) error {
	b, err := ctrl.findByID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateBannerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	url, err := ctrl.saveImage(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	old := ""
	if url != "" {
		old = b.BannerImageURL
		b.BannerImageURL = url
	}
	req.Apply(b)

	if err := ctrl.DB.WithContext(c.UserContext()).Save(b).Error; err != nil {
		if url != "" {
			_ = ctrl.Storage.Delete(url)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui banner")
	}
	if old != "" {
		if err := ctrl.Storage.Delete(old); err != nil {
			log.Printf("[WARN] ⚠️ Gagal hapus gambar banner lama %s: %v", old, err)
		}
	}
	return helper.JsonUpdated(c, "Banner diperbarui", b)
}

// DELETE /api/a/banners/:id
func (ctrl *BannerController) Delete(c *fiber.Ctx) error {
	b, err := ctrl.findByID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Delete(b).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus banner")
	}
	if err := ctrl.Storage.Delete(b.BannerImageURL); err != nil {
		log.Printf("[WARN] ⚠️ Gagal hapus gambar banner %s: %v", b.BannerImageURL, err)
	}
	return helper.JsonDeleted(c, "Banner dihapus", fiber.Map{"banner_id": b.BannerID})
}
