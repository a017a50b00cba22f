package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/referrals/dto"
	"newmeclass_backend/internals/features/referrals/model"
	"newmeclass_backend/internals/features/referrals/service"
	userModel "newmeclass_backend/internals/features/users/user/model"
	helper "newmeclass_backend/internals/helpers"
)

var validate = validator.New()

type ReferralController struct {
	DB *gorm.DB
}

func NewReferralController(db *gorm.DB) *ReferralController {
	return &ReferralController{DB: db}
}

// GET /api/public/referrals/settings
func (ctrl *ReferralController) GetSettings(c *fiber.Ctx) error {
	s, err := service.GetSettings(ctrl.DB)
	if err != nil {
		log.Printf("[ERROR] ❌ Gagal ambil referral settings: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pengaturan referral")
	}
	return helper.JsonOK(c, "Pengaturan referral", s)
}

// PUT /api/a/referrals/settings
func (ctrl *ReferralController) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateReferralSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := req.ToUpdates()
	if req.Benefits != nil {
		updates["benefits"] = datatypes.JSONSlice[string](*req.Benefits)
	}

	s, err := service.SaveSettings(ctrl.DB, updates)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan pengaturan referral")
	}
	return helper.JsonUpdated(c, "Pengaturan referral diperbarui", s)
}

// GET /api/a/referrals/leaderboard?limit=20
func (ctrl *ReferralController) Leaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var items []dto.LeaderboardItem
	if err := ctrl.DB.Model(&userModel.UserModel{}).
		Select("id, full_name, email, referral_code, referral_count, referral_balance").
		Where("referral_count > 0").
		Order("referral_count DESC, referral_balance DESC").
		Limit(limit).
		Scan(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil leaderboard")
	}
	return helper.JsonOK(c, "Leaderboard referral", items)
}

// GET /api/a/referrals/transactions?status=&page=&per_page=
func (ctrl *ReferralController) ListTransactions(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Table("referral_transactions AS rt").
		Joins("LEFT JOIN users AS r ON r.id = rt.referrer_id").
		Joins("LEFT JOIN users AS u ON u.id = rt.referred_user_id")
	if status := c.Query("status"); status != "" {
		q = q.Where("rt.status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung transaksi")
	}

	var items []dto.TransactionItem
	if err := q.Select(`rt.id, rt.referrer_id, r.full_name AS referrer_name, r.email AS referrer_email,
		rt.referred_user_id, u.full_name AS referred_name, u.email AS referred_email,
		rt.referral_code, rt.bonus_amount, rt.status, rt.order_id, rt.credited_at, rt.created_at`).
		Order("rt.created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Scan(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil transaksi")
	}
	return helper.JsonList(c, "Transaksi referral", items, p.Build(total))
}

// GET /api/a/referrals/stats
func (ctrl *ReferralController) Stats(c *fiber.Ctx) error {
	var st dto.ReferralStats

	if err := ctrl.DB.Model(&userModel.UserModel{}).Where("referral_count > 0").Count(&st.TotalReferrers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}
	if err := ctrl.DB.Model(&model.ReferralTransactionModel{}).Count(&st.TotalReferrals).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}
	if err := ctrl.DB.Model(&model.ReferralTransactionModel{}).
		Where("status = ?", model.ReferralStatusPending).Count(&st.PendingBonus).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}
	if err := ctrl.DB.Model(&model.ReferralTransactionModel{}).
		Where("status = ?", model.ReferralStatusCredited).
		Select("COALESCE(SUM(bonus_amount), 0)").Scan(&st.TotalBonusPaid).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}
	return helper.JsonOK(c, "Statistik referral", st)
}
