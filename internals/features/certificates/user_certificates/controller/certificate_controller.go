package controller

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"newmeclass_backend/internals/constants"
	"newmeclass_backend/internals/features/certificates/user_certificates/dto"
	"newmeclass_backend/internals/features/certificates/user_certificates/model"
	"newmeclass_backend/internals/features/certificates/user_certificates/service"
	helper "newmeclass_backend/internals/helpers"
	"newmeclass_backend/internals/helpers/dbtime"
)

var validate = validator.New()

// ukuran sisi terpanjang aset (px) sebelum disimpan sebagai PNG
var assetMaxSide = map[string]int{
	model.AssetBackground: 2480,
	model.AssetLogo:       600,
	model.AssetSignature:  800,
}

type CertificateController struct {
	DB       *gorm.DB
	Storage  *helper.LocalStorage
	Renderer service.Renderer
}

func NewCertificateController(db *gorm.DB, storage *helper.LocalStorage, verifyBaseURL string) *CertificateController {
	return &CertificateController{
		DB:      db,
		Storage: storage,
		Renderer: service.Renderer{
			AssetPath:     storage.LocalPath,
			VerifyBaseURL: verifyBaseURL,
		},
	}
}

func certificateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrCertificateNotFound),
		errors.Is(err, service.ErrNoAnalysis):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotEligible):
		return helper.JsonErrorCode(c, fiber.StatusForbidden, "PAYMENT_REQUIRED", err.Error())
	case errors.Is(err, service.ErrInvalidAssetType):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Printf("[ERROR] ❌ certificate: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan sertifikat")
	}
}

func sendPDF(c *fiber.Ctx, filename string, buf *bytes.Buffer) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

func adminID(c *fiber.Ctx) *uuid.UUID {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil
	}
	return &id
}

/* =========================================================
   PUBLIC
========================================================= */

// GET /api/public/certificates/verify/:number
func (h *CertificateController) Verify(c *fiber.Ctx) error {
	number := strings.TrimSpace(c.Params("number"))
	cert, err := service.Verify(c.UserContext(), h.DB, number)
	if errors.Is(err, service.ErrCertificateNotFound) {
		return helper.JsonOK(c, "Sertifikat tidak ditemukan", dto.VerifyResponse{
			Valid:             false,
			Message:           "Certificate not found",
			CertificateNumber: number,
		})
	}
	if err != nil {
		return certificateError(c, err)
	}
	return helper.JsonOK(c, "Sertifikat valid", dto.NewVerifyResponse(cert))
}

// GET /api/public/certificates/download/:number
func (h *CertificateController) Download(c *fiber.Ctx) error {
	cert, err := service.Verify(c.UserContext(), h.DB, c.Params("number"))
	if err != nil {
		return certificateError(c, err)
	}
	tmpl, err := service.GetTemplate(h.DB)
	if err != nil {
		return certificateError(c, err)
	}

	buf := new(bytes.Buffer)
	if err := h.Renderer.RenderCertificate(buf, *cert, tmpl); err != nil {
		return certificateError(c, err)
	}
	return sendPDF(c, "sertifikat_"+cert.UserCertNumber+".pdf", buf)
}

/* =========================================================
   USER
========================================================= */

// GET /api/u/certificates/eligibility
func (h *CertificateController) Eligibility(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	el, err := service.CheckEligibility(c.UserContext(), h.DB, userID)
	if err != nil {
		return certificateError(c, err)
	}
	return helper.JsonOK(c, el.Message, el)
}

// GET /api/u/certificates/result-pdf
func (h *CertificateController) ResultPDF(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	u, attempt, err := service.ResultForPDF(c.UserContext(), h.DB, userID)
	if err != nil {
		return certificateError(c, err)
	}
	tmpl, err := service.GetTemplate(h.DB)
	if err != nil {
		return certificateError(c, err)
	}

	buf := new(bytes.Buffer)
	doc := service.ResultDoc{
		UserName: u.FullName,
		Tier:     attempt.TestAttemptTier,
		Result:   attempt.TestAttemptResult.Data(),
		TakenAt:  dbtime.FormatDateID(attempt.TestAttemptCreatedAt),
	}
	if err := h.Renderer.RenderResult(buf, doc, tmpl); err != nil {
		return certificateError(c, err)
	}
	name := strings.ReplaceAll(strings.TrimSpace(u.FullName), " ", "_")
	return sendPDF(c, fmt.Sprintf("sertifikat_ai_%s_%s.pdf", name, dbtime.NowLocal().Format("20060102")), buf)
}

/* =========================================================
   ADMIN
========================================================= */

// GET /api/a/certificates/template
func (h *CertificateController) GetTemplate(c *fiber.Ctx) error {
	t, err := service.GetTemplate(h.DB)
	if err != nil {
		return certificateError(c, err)
	}
	return helper.JsonOK(c, "Template sertifikat", t)
}

// PUT /api/a/certificates/template
func (h *CertificateController) UpdateTemplate(c *fiber.Ctx) error {
	var req dto.UpdateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	t, err := service.SaveTemplate(h.DB, req.ToUpdates(), adminID(c))
	if err != nil {
		return certificateError(c, err)
	}
	return helper.JsonUpdated(c, "Template sertifikat diperbarui", t)
}

// POST /api/a/certificates/template/upload/:asset_type (multipart: file)
func (h *CertificateController) UploadAsset(c *fiber.Ctx) error {
	assetType := strings.ToLower(c.Params("asset_type"))
	if model.AssetColumn(assetType) == "" {
		return certificateError(c, service.ErrInvalidAssetType)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File wajib diupload")
	}
	if constants.DetectFileTypeFromExt(fh.Filename) != constants.FileTypeImage {
		return helper.JsonError(c, fiber.StatusBadRequest, "File type not allowed")
	}

	url, err := h.Storage.SaveImageAsPNG("certificates", fh, assetMaxSide[assetType])
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	old, err := service.SetAsset(h.DB, assetType, url, adminID(c))
	if err != nil {
		_ = h.Storage.Delete(url)
		return certificateError(c, err)
	}
	if old != "" {
		if err := h.Storage.Delete(old); err != nil {
			log.Printf("[WARN] ⚠️ Gagal hapus aset lama %s: %v", old, err)
		}
	}
	return helper.JsonCreated(c, assetType+" uploaded successfully", fiber.Map{"url": url})
}

// GET /api/a/certificates/issued?q=&page=&per_page=
func (h *CertificateController) ListIssued(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	q := h.DB.WithContext(c.UserContext()).Model(&model.UserCertificateModel{})
	if kw := strings.TrimSpace(c.Query("q")); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		q = q.Where("(LOWER(user_cert_recipient_name) LIKE ? OR LOWER(user_cert_recipient_email) LIKE ? OR LOWER(user_cert_number) LIKE ?)", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return certificateError(c, err)
	}
	var rows []model.UserCertificateModel
	if err := q.Order("user_cert_issued_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return certificateError(c, err)
	}
	return helper.JsonList(c, "Sertifikat terbit", rows, p.Build(total))
}

// POST /api/a/certificates/issue
func (h *CertificateController) Issue(c *fiber.Ctx) error {
	var req dto.IssueCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	cert, err := service.Issue(c.UserContext(), h.DB, service.IssueInput{
		UserID:         uuid.MustParse(req.UserID),
		CourseName:     req.CourseName,
		CompletionDate: req.CompletionDate,
		IssuedBy:       adminID(c),
	})
	if err != nil {
		return certificateError(c, err)
	}
	return helper.JsonCreated(c, "Certificate issued successfully", cert)
}
