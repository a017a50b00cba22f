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
	settingsService "newmeclass_backend/internals/features/content/settings/service"
	"newmeclass_backend/internals/features/payments/dto"
	"newmeclass_backend/internals/features/payments/model"
	"newmeclass_backend/internals/features/payments/service"
	helper "newmeclass_backend/internals/helpers"
)

var validate = validator.New()

type PaymentController struct {
	DB        *gorm.DB
	Gateway   service.Gateway // nil = Midtrans nonaktif
	ServerKey string
	ClientKey string
	Storage   *helper.LocalStorage
}

func NewPaymentController(db *gorm.DB, gw service.Gateway, serverKey, clientKey string, storage *helper.LocalStorage) *PaymentController {
	return &PaymentController{DB: db, Gateway: gw, ServerKey: serverKey, ClientKey: clientKey, Storage: storage}
}

func paymentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrGatewayDisabled):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrGatewayFailed):
		return helper.JsonError(c, fiber.StatusBadGateway, err.Error())
	case errors.Is(err, service.ErrAlreadyPaid), errors.Is(err, service.ErrNotReviewable):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPaymentNotFound), errors.Is(err, service.ErrUserNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidSignature):
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	default:
		log.Printf("[ERROR] ❌ payment: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pembayaran")
	}
}

/* =========================================================
   PUBLIC
========================================================= */

// GET /api/public/payments/test-price
func (h *PaymentController) TestPrice(c *fiber.Ctx) error {
	s, err := settingsService.Get(h.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil harga tes")
	}
	return helper.JsonOK(c, "Harga tes premium", fiber.Map{
		"price":           settingsService.TestPrice(h.DB),
		"require_payment": s.RequirePayment,
		"midtrans":        h.Gateway != nil,
		"client_key":      h.ClientKey,
		"bank_name":       s.BankName,
		"bank_account":    s.BankAccount,
		"bank_holder":     s.BankHolder,
	})
}

// POST /api/payments/midtrans/notification
func (h *PaymentController) MidtransWebhook(c *fiber.Ctx) error {
	var n service.Notification
	if err := c.BodyParser(&n); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(n.OrderID) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "order_id wajib ada")
	}

	res, err := service.HandleNotification(c.UserContext(), h.DB, h.Gateway, h.ServerKey, n)
	if err != nil {
		return paymentError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}

/* =========================================================
   USER
========================================================= */

// POST /api/u/payments/snap
func (h *PaymentController) CreateSnap(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := service.CreateSnap(c.UserContext(), h.DB, h.Gateway, userID)
	if err != nil {
		return paymentError(c, err)
	}
	return helper.JsonCreated(c, "Transaksi dibuat", dto.NewSnapResponse(p, h.ClientKey))
}

// GET /api/u/payments/:order_id/status
func (h *PaymentController) Status(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := service.CheckStatus(c.UserContext(), h.DB, h.Gateway, userID, c.Params("order_id"))
	if err != nil {
		return paymentError(c, err)
	}
	return helper.JsonOK(c, "Status pembayaran", p)
}

// GET /api/u/payments
func (h *PaymentController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var rows []model.PaymentModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("payment_user_id = ?", userID).
		Order("payment_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat pembayaran")
	}
	return helper.JsonOK(c, "Riwayat pembayaran", rows)
}

// POST /api/u/payments/proof (multipart: proof)
func (h *PaymentController) UploadProof(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	fh, err := c.FormFile("proof")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File bukti transfer wajib diupload")
	}
	if !constants.IsPaymentProofExt(fh.Filename) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format bukti harus png/jpg/jpeg")
	}

	url, err := h.Storage.SaveFile("payment-proofs", fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	p, err := service.SubmitProof(c.UserContext(), h.DB, userID, url)
	if err != nil {
		_ = h.Storage.Delete(url)
		return paymentError(c, err)
	}
	return helper.JsonCreated(c, "Bukti transfer terkirim, menunggu verifikasi admin", p)
}

/* =========================================================
   ADMIN
========================================================= */

// GET /api/a/payments?status=&method=&q=&page=&per_page=
func (h *PaymentController) ListAdmin(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.UserContext()).
		Table("payments AS p").
		Joins("JOIN users u ON u.id = p.payment_user_id").
		Where("p.payment_deleted_at IS NULL")
	if s := c.Query("status"); s != "" {
		q = q.Where("p.payment_status = ?", s)
	}
	if m := c.Query("method"); m != "" {
		q = q.Where("p.payment_method = ?", m)
	}
	if kw := strings.TrimSpace(c.Query("q")); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		q = q.Where("(LOWER(u.full_name) LIKE ? OR LOWER(u.email) LIKE ? OR LOWER(p.payment_order_id) LIKE ?)", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung pembayaran")
	}
	var rows []dto.AdminPaymentItem
	if err := q.Select("p.*, u.full_name AS user_full_name, u.email AS user_email").
		Order("p.payment_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran")
	}
	return helper.JsonList(c, "Daftar pembayaran", rows, p.Build(total))
}

// PUT /api/a/payments/:id/review
func (h *PaymentController) Review(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pembayaran tidak valid")
	}
	var req dto.ReviewPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	p, err := service.Review(c.UserContext(), h.DB, id, *req.Approve, strings.TrimSpace(req.Note))
	if err != nil {
		return paymentError(c, err)
	}
	msg := "Pembayaran ditolak"
	if *req.Approve {
		msg = "Pembayaran disetujui"
	}
	return helper.JsonUpdated(c, msg, p)
}

// GET /api/a/payments/stats
func (h *PaymentController) Stats(c *fiber.Ctx) error {
	st, err := service.GetStats(c.UserContext(), h.DB)
	if err != nil {
		return paymentError(c, err)
	}
	return helper.JsonOK(c, "Statistik pembayaran", st)
}
