package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserTypeIndividual  = "individual"
	UserTypeInstitution = "institution"

	TestStatusNotStarted     = "not_started"
	TestStatusPendingPayment = "pending_payment"
	TestStatusPaid           = "paid"
	TestStatusInProgress     = "in_progress"
	TestStatusCompleted      = "completed"

	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email    string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	FullName string    `gorm:"size:150;not null" json:"full_name"`
	Role     string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	BirthDate      *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	WhatsApp       string     `gorm:"column:whatsapp;size:30" json:"whatsapp"`
	UserType       string     `gorm:"type:varchar(20);not null;default:'individual'" json:"user_type"`
	ReferralSource string     `gorm:"size:100" json:"referral_source,omitempty"`
	ReferralOther  string     `gorm:"size:200" json:"referral_other,omitempty"`

	Province string `gorm:"size:100" json:"province,omitempty"`
	City     string `gorm:"size:100" json:"city,omitempty"`
	District string `gorm:"size:100" json:"district,omitempty"`
	Village  string `gorm:"size:100" json:"village,omitempty"`
	Address  string `gorm:"type:text" json:"address,omitempty"`

	InstitutionName    string `gorm:"size:200" json:"institution_name,omitempty"`
	InstitutionAddress string `gorm:"type:text" json:"institution_address,omitempty"`
	InstitutionRole    string `gorm:"size:100" json:"institution_role,omitempty"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`
	IsBanned bool `gorm:"not null;default:false" json:"is_banned"`

	BannedReason string     `gorm:"size:255" json:"banned_reason,omitempty"`
	BannedAt     *time.Time `json:"banned_at,omitempty"`

	// referral
	ReferralCode    string     `gorm:"size:20;uniqueIndex" json:"referral_code"`
	ReferredBy      *uuid.UUID `gorm:"type:uuid;index" json:"referred_by,omitempty"`
	UsedReferral    string     `gorm:"size:20" json:"used_referral_code,omitempty"`
	ReferralCount   int        `gorm:"not null;default:0" json:"referral_count"`
	ReferralBalance int64      `gorm:"not null;default:0" json:"referral_balance"`

	// status test & pembayaran
	FreeTestStatus string `gorm:"type:varchar(20);not null;default:'not_started'" json:"free_test_status"`
	PaidTestStatus string `gorm:"type:varchar(20);not null;default:'not_started'" json:"paid_test_status"`
	PaymentStatus  string `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`

	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	IPAddress   string         `gorm:"size:64" json:"-"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = "user"
	}
	if u.UserType == "" {
		u.UserType = UserTypeIndividual
	}
	if u.FreeTestStatus == "" {
		u.FreeTestStatus = TestStatusNotStarted
	}
	if u.PaidTestStatus == "" {
		u.PaidTestStatus = TestStatusNotStarted
	}
	if u.PaymentStatus == "" {
		u.PaymentStatus = PaymentStatusUnpaid
	}
	return nil
}

// CanLogin: akun aktif dan tidak dibanned.
func (u *UserModel) CanLogin() bool {
	return u.IsActive && !u.IsBanned
}
