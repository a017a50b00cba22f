package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newmeclass_backend/internals/configs"
	"newmeclass_backend/internals/features/referrals/model"
	userModel "newmeclass_backend/internals/features/users/user/model"
)

var (
	ErrReferralCodeNotFound = errors.New("kode referral tidak ditemukan")
	ErrSelfReferral         = errors.New("tidak bisa memakai kode referral sendiri")
)

/* =========================================================
   SETTINGS (singleton id=1)
========================================================= */

// GetSettings: ambil settings, buat default kalau belum ada.
func GetSettings(db *gorm.DB) (model.ReferralSettingsModel, error) {
	def := model.DefaultReferralSettings(configs.ReferralBonus)
	var s model.ReferralSettingsModel
	err := db.Where("id = ?", 1).Attrs(def).FirstOrCreate(&s).Error
	return s, err
}

// SaveSettings: simpan perubahan parsial; field nil tidak diubah.
func SaveSettings(db *gorm.DB, updates map[string]any) (model.ReferralSettingsModel, error) {
	s, err := GetSettings(db)
	if err != nil {
		return s, err
	}
	if len(updates) > 0 {
		if err := db.Model(&s).Updates(updates).Error; err != nil {
			return s, err
		}
	}
	err = db.First(&s, 1).Error
	return s, err
}

/* =========================================================
   REGISTER FLOW
========================================================= */

// FindReferrerByCode: cari pemilik kode (case-insensitive).
func FindReferrerByCode(db *gorm.DB, code string) (*userModel.UserModel, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrReferralCodeNotFound
	}
	var u userModel.UserModel
	err := db.Where("referral_code = ?", code).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReferralCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// RecordReferral dipanggil di dalam transaksi register.
// Transaksi dibuat pending; bonus baru masuk saldo setelah user yang diajak membayar.
func RecordReferral(tx *gorm.DB, referrer, referred *userModel.UserModel) (*model.ReferralTransactionModel, error) {
	if referrer.ID == referred.ID {
		return nil, ErrSelfReferral
	}
	settings, err := GetSettings(tx)
	if err != nil {
		return nil, err
	}
	bonus := settings.BonusPerReferral
	if !settings.IsActive {
		bonus = 0
	}

	rt := &model.ReferralTransactionModel{
		ReferrerID:     referrer.ID,
		ReferredUserID: referred.ID,
		ReferralCode:   referrer.ReferralCode,
		BonusAmount:    bonus,
		Status:         model.ReferralStatusPending,
	}
	if err := tx.Create(rt).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&userModel.UserModel{}).
		Where("id = ?", referrer.ID).
		UpdateColumn("referral_count", gorm.Expr("referral_count + 1")).Error; err != nil {
		return nil, err
	}
	return rt, nil
}

/* =========================================================
   CREDIT (dipanggil saat pembayaran settle)
========================================================= */

// CreditForUser: pending → credited sekali saja, saldo referrer bertambah.
// Return false kalau tidak ada transaksi pending (sudah dikredit / tidak pakai referral).
func CreditForUser(tx *gorm.DB, referredUserID uuid.UUID, orderID string) (bool, error) {
	var rt model.ReferralTransactionModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("referred_user_id = ? AND status = ?", referredUserID, model.ReferralStatusPending).
		First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	upd := map[string]any{
		"status":      model.ReferralStatusCredited,
		"credited_at": now,
	}
	if orderID != "" {
		upd["order_id"] = orderID
	}
	res := tx.Model(&model.ReferralTransactionModel{}).
		Where("id = ? AND status = ?", rt.ID, model.ReferralStatusPending).
		Updates(upd)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	if rt.BonusAmount > 0 {
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ?", rt.ReferrerID).
			UpdateColumn("referral_balance", gorm.Expr("referral_balance + ?", rt.BonusAmount)).Error; err != nil {
			return false, err
		}
	}
	log.Printf("[INFO] 🎁 Bonus referral Rp%d masuk ke %s (order %s)", rt.BonusAmount, rt.ReferrerID, orderID)
	return true, nil
}
