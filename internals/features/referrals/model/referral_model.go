package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ReferralStatusPending   = "pending"
	ReferralStatusCredited  = "credited"
	ReferralStatusCancelled = "cancelled"
)

// ReferralTransactionModel: satu baris per user yang mendaftar pakai kode referral.
type ReferralTransactionModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReferrerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"referrer_id"`
	ReferredUserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"referred_user_id"`
	ReferralCode   string     `gorm:"size:20;not null" json:"referral_code"`
	BonusAmount    int64      `gorm:"not null;default:0" json:"bonus_amount"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	OrderID        *string    `gorm:"size:64" json:"order_id,omitempty"`
	CreditedAt     *time.Time `json:"credited_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ReferralTransactionModel) TableName() string {
	return "referral_transactions"
}

func (m *ReferralTransactionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ReferralSettingsModel: singleton (id = 1)
type ReferralSettingsModel struct {
	ID                 uint                        `gorm:"primaryKey" json:"id"`
	BonusPerReferral   int64                       `gorm:"not null;default:10000" json:"bonus_per_referral"`
	MinimumWithdraw    int64                       `gorm:"not null;default:50000" json:"minimum_withdraw"`
	IsActive           bool                        `gorm:"not null;default:true" json:"is_active"`
	Title              string                      `gorm:"size:200" json:"title"`
	Description        string                      `gorm:"type:text" json:"description"`
	TermsAndConditions string                      `gorm:"type:text" json:"terms_and_conditions"`
	Benefits           datatypes.JSONSlice[string] `json:"benefits"`
	UpdatedAt          time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ReferralSettingsModel) TableName() string {
	return "referral_settings"
}

func DefaultReferralSettings(bonus int64) ReferralSettingsModel {
	if bonus <= 0 {
		bonus = 10000
	}
	return ReferralSettingsModel{
		ID:               1,
		BonusPerReferral: bonus,
		MinimumWithdraw:  50000,
		IsActive:         true,
		Title:            "Program Referral NEWME",
		Description:      "Dapatkan bonus setiap kali teman Anda mendaftar menggunakan kode referral Anda!",
		TermsAndConditions: "1. Kode referral hanya berlaku untuk pendaftaran baru.\n" +
			"2. Bonus akan diberikan setelah teman Anda menyelesaikan pembayaran.\n" +
			"3. Bonus dapat ditarik setelah mencapai minimum withdraw.",
		Benefits: datatypes.JSONSlice[string]{
			"Bonus Rp 10.000 per referral",
			"Tanpa batas maksimal referral",
			"Bonus langsung masuk ke saldo",
		},
	}
}
