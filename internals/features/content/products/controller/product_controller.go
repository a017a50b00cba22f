package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"newmeclass_backend/internals/constants"
	"newmeclass_backend/internals/features/content/products/dto"
	"newmeclass_backend/internals/features/content/products/model"
	helper "newmeclass_backend/internals/helpers"
)

var validate = validator.New()

type ProductController struct {
	DB      *gorm.DB
	Storage *helper.LocalStorage
}

func NewProductController(db *gorm.DB, storage *helper.LocalStorage) *ProductController {
	return &ProductController{DB: db, Storage: storage}
}

var sortColumns = map[string]string{
	"created_at": "product_created_at",
	"price":      "product_price",
	"name":       "product_name",
	"stock":      "product_stock",
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID produk tidak valid")
	}
	return id, nil
}

func (ctrl *ProductController) find(c *fiber.Ctx, onlyActive bool) (*model.ProductModel, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, err
	}
	q := ctrl.DB.WithContext(c.UserContext()).Where("product_id = ?", id)
	if onlyActive {
		q = q.Where("product_is_active = ?", true)
	}
	var p model.ProductModel
	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Produk tidak ditemukan")
		}
		return nil, err
	}
	return &p, nil
}

func (ctrl *ProductController) list(c *fiber.Ctx, onlyActive bool) error {
	pg := helper.ResolvePaging(c, 20, 100)
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.ProductModel{})
	if onlyActive {
		q = q.Where("product_is_active = ?", true)
	} else if v := c.Query("is_active"); v != "" {
		q = q.Where("product_is_active = ?", v == "true" || v == "1")
	}
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		q = q.Where("product_category = ?", cat)
	}
	if kw := strings.TrimSpace(c.Query("q")); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		q = q.Where("(LOWER(product_name) LIKE ? OR LOWER(product_description) LIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung produk")
	}
	var rows []model.ProductModel
	order := helper.ParseSort(c, "created_at", "desc").OrderClause(sortColumns, "created_at")
	if err := q.Order(order).Offset(pg.Offset).Limit(pg.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil produk")
	}
	return helper.JsonList(c, "Daftar produk", rows, pg.Build(total))
}

/* =========================================================
   PUBLIC
========================================================= */

// GET /api/public/products?category=&q=
func (ctrl *ProductController) ListPublic(c *fiber.Ctx) error {
	return ctrl.list(c, true)
}

// GET /api/public/products/:id
func (ctrl *ProductController) GetPublic(c *fiber.Ctx) error {
	p, err := ctrl.find(c, true)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail produk", p)
}

// GET /api/public/products/categories
func (ctrl *ProductController) Categories(c *fiber.Ctx) error {
	var cats []string
	if err := ctrl.DB.WithContext(c.UserContext()).Model(&model.ProductModel{}).
		Where("product_is_active = ?", true).
		Distinct("product_category").
		Order("product_category ASC").
		Pluck("product_category", &cats).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kategori")
	}
	return helper.JsonOK(c, "Kategori produk", cats)
}

/* =========================================================
   ADMIN
========================================================= */

// GET /api/a/products?is_active=&category=&q=
func (ctrl *ProductController) ListAdmin(c *fiber.Ctx) error {
	return ctrl.list(c, false)
}

// GET /api/a/products/:id
func (ctrl *ProductController) GetByID(c *fiber.Ctx) error {
	p, err := ctrl.find(c, false)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail produk", p)
}

// POST /api/a/products
func (ctrl *ProductController) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	p := req.ToModel()
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&p).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat produk")
	}
	return helper.JsonCreated(c, "Produk berhasil dibuat", p)
}

// PUT /api/a/products/:id
func (ctrl *ProductController) Update(c *fiber.Ctx) error {
	p, err := ctrl.find(c, false)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	req.Apply(p)
	if err := ctrl.DB.WithContext(c.UserContext()).Save(p).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui produk")
	}
	return helper.JsonUpdated(c, "Produk diperbarui", p)
}

// DELETE /api/a/products/:id
func (ctrl *ProductController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.ProductModel{}, "product_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus produk")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Produk tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Produk dihapus", fiber.Map{"product_id": id})
}

// POST /api/a/products/upload-image (multipart: image)
func (ctrl *ProductController) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File gambar wajib diupload")
	}
	if constants.DetectFileTypeFromExt(fh.Filename) != constants.FileTypeImage {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format gambar harus png/jpg/jpeg/webp")
	}
	url, err := ctrl.Storage.SaveImageAsWebP("products", fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Gambar terupload", fiber.Map{"url": url})
}

// GET /api/a/products/stats
func (ctrl *ProductController) Stats(c *fiber.Ctx) error {
	base := ctrl.DB.WithContext(c.UserContext()).Model(&model.ProductModel{})
	var s dto.ProductStats
	steps := []func() error{
		func() error { return base.Session(&gorm.Session{}).Count(&s.Total).Error },
		func() error {
			return base.Session(&gorm.Session{}).Where("product_is_active = ?", true).Count(&s.Active).Error
		},
		func() error {
			return base.Session(&gorm.Session{}).Where("product_stock = 0").Count(&s.OutOfStock).Error
		},
		func() error {
			return base.Session(&gorm.Session{}).
				Select("COALESCE(SUM(product_price * product_stock), 0)").
				Scan(&s.InventoryValue).Error
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung statistik produk")
		}
	}
	return helper.JsonOK(c, "Statistik produk", s)
}
