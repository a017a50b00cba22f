package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"newmeclass_backend/internals/constants"
	"newmeclass_backend/internals/features/content/articles/dto"
	"newmeclass_backend/internals/features/content/articles/model"
	helper "newmeclass_backend/internals/helpers"
)

var validate = validator.New()

type ArticleController struct {
	DB      *gorm.DB
	Storage *helper.LocalStorage
}

func NewArticleController(db *gorm.DB, storage *helper.LocalStorage) *ArticleController {
	return &ArticleController{DB: db, Storage: storage}
}

var sortColumns = map[string]string{
	"published_at": "article_published_at",
	"created_at":   "article_created_at",
	"title":        "article_title",
	"views":        "article_view_count",
}

func (ctrl *ArticleController) slugOptions(exclude any) helper.SlugOptions {
	return helper.SlugOptions{
		Table:       "articles",
		SlugColumn:  "article_slug",
		IDColumn:    "article_id",
		ExcludeID:   exclude,
		DefaultBase: "artikel",
	}
}

func (ctrl *ArticleController) findByID(c *fiber.Ctx) (*model.ArticleModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID artikel tidak valid")
	}
	var a model.ArticleModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&a, "article_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Artikel tidak ditemukan")
		}
		return nil, err
	}
	return &a, nil
}

/* =========================================================
   PUBLIC
========================================================= */

// GET /api/public/articles?category=&q=&page=&per_page=
func (ctrl *ArticleController) ListPublic(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 10, 50)
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.ArticleModel{}).
		Where("article_is_published = ?", true)
	if cat := strings.ToLower(strings.TrimSpace(c.Query("category"))); cat != "" {
		q = q.Where("article_category = ?", cat)
	}
	if kw := strings.TrimSpace(c.Query("q")); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		q = q.Where("(LOWER(article_title) LIKE ? OR LOWER(article_excerpt) LIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung artikel")
	}
	var rows []model.ArticleModel
	order := helper.ParseSort(c, "published_at", "desc").OrderClause(sortColumns, "published_at")
	if err := q.Order(order).Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil artikel")
	}
	return helper.JsonList(c, "Daftar artikel", rows, p.Build(total))
}

// GET /api/public/articles/:slug  (slug atau id), view count +1
func (ctrl *ArticleController) GetPublic(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("slug"))
	db := ctrl.DB.WithContext(c.UserContext())

	q := db.Where("article_is_published = ?", true)
	if id, err := uuid.Parse(key); err == nil {
		q = q.Where("article_id = ?", id)
	} else {
		q = q.Where("article_slug = ?", key)
	}

	var a model.ArticleModel
	if err := q.First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Artikel tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil artikel")
	}

	if err := db.Model(&model.ArticleModel{}).
		Where("article_id = ?", a.ArticleID).
		UpdateColumn("article_view_count", gorm.Expr("article_view_count + 1")).Error; err != nil {
		log.Printf("[WARN] ⚠️ Gagal update view count artikel %s: %v", a.ArticleID, err)
	} else {
		a.ArticleViewCount++
	}
	return helper.JsonOK(c, "Detail artikel", a)
}

/* =========================================================
   ADMIN
========================================================= */

// GET /api/a/articles?is_published=&category=&q=
func (ctrl *ArticleController) ListAdmin(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.ArticleModel{})
	if v := c.Query("is_published"); v != "" {
		q = q.Where("article_is_published = ?", v == "true" || v == "1")
	}
	if cat := strings.ToLower(strings.TrimSpace(c.Query("category"))); cat != "" {
		q = q.Where("article_category = ?", cat)
	}
	if kw := strings.TrimSpace(c.Query("q")); kw != "" {
		q = q.Where("LOWER(article_title) LIKE ?", "%"+strings.ToLower(kw)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung artikel")
	}
	var rows []model.ArticleModel
	order := helper.ParseSort(c, "created_at", "desc").OrderClause(sortColumns, "created_at")
	if err := q.Order(order).Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil artikel")
	}
	return helper.JsonList(c, "Daftar artikel", rows, p.Build(total))
}

// GET /api/a/articles/:id
func (ctrl *ArticleController) GetByID(c *fiber.Ctx) error {
	a, err := ctrl.findByID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail artikel", a)
}

// POST /api/a/articles
func (ctrl *ArticleController) Create(c *fiber.Ctx) error {
	var req dto.CreateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	a := req.ToModel()
	base := req.ArticleSlug
	if strings.TrimSpace(base) == "" {
		base = a.ArticleTitle
	}
	db := ctrl.DB.WithContext(c.UserContext())
	slug, err := helper.GenerateUniqueSlug(db, ctrl.slugOptions(nil), base)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug")
	}
	a.ArticleSlug = slug

	if err := db.Create(&a).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Slug artikel sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat artikel")
	}
	log.Printf("[INFO] ✅ Artikel dibuat: %s", a.ArticleSlug)
	return helper.JsonCreated(c, "Artikel berhasil dibuat", a)
}

// PUT /api/a/articles/:id
func (ctrl *ArticleController) Update(c *fiber.Ctx) error {
	a, err := ctrl.findByID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.UserContext())
	req.Apply(a)
	if req.ArticleSlug != nil && strings.TrimSpace(*req.ArticleSlug) != "" &&
		helper.GenerateSlug(*req.ArticleSlug) != a.ArticleSlug {
		slug, err := helper.GenerateUniqueSlug(db, ctrl.slugOptions(a.ArticleID), *req.ArticleSlug)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug")
		}
		a.ArticleSlug = slug
	}

	if err := db.Save(a).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Slug artikel sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui artikel")
	}
	return helper.JsonUpdated(c, "Artikel diperbarui", a)
}

// DELETE /api/a/articles/:id
func (ctrl *ArticleController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID artikel tidak valid")
	}
	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.ArticleModel{}, "article_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus artikel")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Artikel tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Artikel dihapus", fiber.Map{"article_id": id})
}

// POST /api/a/articles/upload-image (multipart: image) → URL webp
func (ctrl *ArticleController) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File gambar wajib diupload")
	}
	if constants.DetectFileTypeFromExt(fh.Filename) != constants.FileTypeImage {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format gambar harus png/jpg/jpeg/webp")
	}
	url, err := ctrl.Storage.SaveImageAsWebP("articles", fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Gambar terupload", fiber.Map{"url": url})
}

// GET /api/a/articles/stats
func (ctrl *ArticleController) Stats(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.UserContext()).Model(&model.ArticleModel{})
	var s dto.ArticleStats
	if err := db.Session(&gorm.Session{}).Count(&s.Total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung artikel")
	}
	if err := db.Session(&gorm.Session{}).Where("article_is_published = ?", true).Count(&s.Published).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung artikel")
	}
	if err := db.Session(&gorm.Session{}).Select("COALESCE(SUM(article_view_count), 0)").Scan(&s.TotalViews).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung views")
	}
	s.Drafts = s.Total - s.Published
	return helper.JsonOK(c, "Statistik artikel", s)
}
