package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentModel "newmeclass_backend/internals/features/payments/model"
	referralModel "newmeclass_backend/internals/features/referrals/model"
	resultModel "newmeclass_backend/internals/features/tests/results/model"
	"newmeclass_backend/internals/features/users/user/dto"
	userModel "newmeclass_backend/internals/features/users/user/model"
	helper "newmeclass_backend/internals/helpers"
	"newmeclass_backend/internals/helpers/dbtime"
)

var validate = validator.New()

type UserAdminController struct {
	DB *gorm.DB
}

func NewUserAdminController(db *gorm.DB) *UserAdminController {
	return &UserAdminController{DB: db}
}

func (ctrl *UserAdminController) findUser(c *fiber.Ctx) (*userModel.UserModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID user tidak valid")
	}
	var u userModel.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, err
	}
	return &u, nil
}

// GET /api/a/users?search=&user_type=&is_banned=&payment_status=&page=&per_page=
func (ctrl *UserAdminController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	sort := helper.ParseSort(c, "created_at", "desc")

	q := ctrl.DB.WithContext(c.UserContext()).Model(&userModel.UserModel{})
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR whatsapp LIKE ?)", like, like, like)
	}
	if t := c.Query("user_type"); t != "" {
		q = q.Where("user_type = ?", t)
	}
	if b := c.Query("is_banned"); b != "" {
		q = q.Where("is_banned = ?", b == "true" || b == "1")
	}
	if ps := c.Query("payment_status"); ps != "" {
		q = q.Where("payment_status = ?", ps)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung user")
	}
	var rows []userModel.UserModel
	if err := q.Order(sort.OrderClause(map[string]string{
		"created_at":    "created_at",
		"full_name":     "full_name",
		"last_login_at": "last_login_at",
	}, "created_at")).Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil user")
	}
	return helper.JsonList(c, "Daftar user", rows, p.Build(total))
}

// GET /api/a/users/stats
func (ctrl *UserAdminController) Stats(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.UserContext())
	var st dto.UserStats

	count := func(dst *int64, where string, args ...any) error {
		q := db.Model(&userModel.UserModel{})
		if where != "" {
			q = q.Where(where, args...)
		}
		return q.Count(dst).Error
	}

	now := dbtime.NowLocal()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	checks := []error{
		count(&st.Total, ""),
		count(&st.Active, "is_active = ? AND is_banned = ?", true, false),
		count(&st.Banned, "is_banned = ?", true),
		count(&st.Unpaid, "payment_status = ?", userModel.PaymentStatusUnpaid),
		count(&st.PendingPayment, "payment_status = ?", userModel.PaymentStatusPending),
		count(&st.Paid, "payment_status = ?", userModel.PaymentStatusApproved),
		count(&st.FreeTestCompleted, "free_test_status = ?", userModel.TestStatusCompleted),
		count(&st.PaidTestCompleted, "paid_test_status = ?", userModel.TestStatusCompleted),
		count(&st.NewToday, "created_at >= ?", startOfDay),
	}
	for _, err := range checks {
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik user")
		}
	}
	return helper.JsonOK(c, "Statistik user", st)
}

// GET /api/a/users/:id
func (ctrl *UserAdminController) Detail(c *fiber.Ctx) error {
	u, err := ctrl.findUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := ctrl.DB.WithContext(c.UserContext())
	out := dto.UserDetail{User: *u}

	if u.ReferredBy != nil {
		var ref userModel.UserModel
		if err := db.Select("full_name", "email", "referral_code").First(&ref, "id = ?", *u.ReferredBy).Error; err == nil {
			out.ReferredBy = &dto.ReferrerBrief{FullName: ref.FullName, Email: ref.Email, ReferralCode: ref.ReferralCode}
		}
	}

	var txs []referralModel.ReferralTransactionModel
	if err := db.Where("referrer_id = ? OR referred_user_id = ?", u.ID, u.ID).
		Order("created_at DESC").Find(&txs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil transaksi referral")
	}
	out.ReferralTransactions = txs

	var pays []paymentModel.PaymentModel
	if err := db.Where("payment_user_id = ?", u.ID).
		Order("payment_created_at DESC").Find(&pays).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran")
	}
	out.Payments = pays

	if err := db.Model(&resultModel.TestAttemptModel{}).
		Where("test_attempt_user_id = ?", u.ID).Count(&out.TestAttempts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung hasil tes")
	}
	return helper.JsonOK(c, "Detail user", out)
}

// PUT /api/a/users/:id
func (ctrl *UserAdminController) Update(c *fiber.Ctx) error {
	u, err := ctrl.findUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := req.ToUpdates()
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada perubahan")
	}
	db := ctrl.DB.WithContext(c.UserContext())
	if err := db.Model(u).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui user")
	}
	if err := db.First(u, "id = ?", u.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat ulang user")
	}
	return helper.JsonUpdated(c, "User diperbarui", u)
}

// PUT /api/a/users/:id/ban
func (ctrl *UserAdminController) Ban(c *fiber.Ctx) error {
	u, err := ctrl.findUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if me, _ := helper.GetUserIDFromToken(c); me == u.ID {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak bisa memblokir akun sendiri")
	}
	var req dto.BanUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	now := time.Now()
	if err := ctrl.DB.WithContext(c.UserContext()).Model(u).Updates(map[string]any{
		"is_banned":     true,
		"banned_reason": strings.TrimSpace(req.Reason),
		"banned_at":     now,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memblokir user")
	}
	log.Printf("[INFO] 🚫 User %s diblokir: %s", u.Email, req.Reason)
	return helper.JsonUpdated(c, "User diblokir", fiber.Map{"id": u.ID, "is_banned": true})
}

// PUT /api/a/users/:id/unban
func (ctrl *UserAdminController) Unban(c *fiber.Ctx) error {
	u, err := ctrl.findUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Model(u).Updates(map[string]any{
		"is_banned":     false,
		"banned_reason": "",
		"banned_at":     nil,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuka blokir user")
	}
	return helper.JsonUpdated(c, "Blokir user dibuka", fiber.Map{"id": u.ID, "is_banned": false})
}

// DELETE /api/a/users/:id
// Soft delete user; transaksi referral & pembayaran ikut dihapus.
func (ctrl *UserAdminController) Delete(c *fiber.Ctx) error {
	u, err := ctrl.findUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if me, _ := helper.GetUserIDFromToken(c); me == u.ID {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak bisa menghapus akun sendiri")
	}

	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("referrer_id = ? OR referred_user_id = ?", u.ID, u.ID).
			Delete(&referralModel.ReferralTransactionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("payment_user_id = ?", u.ID).Delete(&paymentModel.PaymentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(u).Error
	})
	if err != nil {
		log.Printf("[ERROR] ❌ Gagal hapus user %s: %v", u.ID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus user")
	}
	return helper.JsonDeleted(c, "User dihapus", fiber.Map{"id": u.ID})
}
