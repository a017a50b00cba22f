package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	userModel "newmeclass_backend/internals/features/users/user/model"
)

/* ===================== REQUEST ===================== */

type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	FullName       string `json:"full_name" validate:"required,min=2,max=150"`
	BirthDate      string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	WhatsApp       string `json:"whatsapp" validate:"required,min=10,max=30"`
	UserType       string `json:"user_type" validate:"omitempty,oneof=individual institution"`
	ReferralSource string `json:"referral_source" validate:"required,oneof=google facebook iklan kerabat instagram referral other"`
	ReferralOther  string `json:"referral_other" validate:"omitempty,max=200"`
	ReferralCode   string `json:"referral_code" validate:"omitempty,max=20"`

	Province string `json:"province" validate:"required"`
	City     string `json:"city" validate:"required"`
	District string `json:"district" validate:"required"`
	Village  string `json:"village"`
	Address  string `json:"address"`

	InstitutionName    string `json:"institution_name" validate:"required_if=UserType institution"`
	InstitutionAddress string `json:"institution_address"`
	InstitutionRole    string `json:"institution_role"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	r.ReferralCode = strings.ToUpper(strings.TrimSpace(r.ReferralCode))
	if r.UserType == "" {
		r.UserType = userModel.UserTypeIndividual
	}
}

// ToModel: password sudah di-hash oleh service.
func (r RegisterRequest) ToModel(passwordHash string) *userModel.UserModel {
	u := &userModel.UserModel{
		Email:              r.Email,
		Password:           passwordHash,
		FullName:           r.FullName,
		WhatsApp:           r.WhatsApp,
		UserType:           r.UserType,
		ReferralSource:     r.ReferralSource,
		ReferralOther:      r.ReferralOther,
		Province:           r.Province,
		City:               r.City,
		District:           r.District,
		Village:            r.Village,
		Address:            r.Address,
		InstitutionName:    r.InstitutionName,
		InstitutionAddress: r.InstitutionAddress,
		InstitutionRole:    r.InstitutionRole,
		IsActive:           true,
	}
	if t, err := time.Parse("2006-01-02", r.BirthDate); err == nil {
		u.BirthDate = &t
	}
	return u
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// UpdateProfileRequest: field kosong = tidak diubah.
type UpdateProfileRequest struct {
	FullName           *string `json:"full_name" validate:"omitempty,min=2,max=150"`
	BirthDate          *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	WhatsApp           *string `json:"whatsapp" validate:"omitempty,min=10,max=30"`
	Province           *string `json:"province"`
	City               *string `json:"city"`
	District           *string `json:"district"`
	Village            *string `json:"village"`
	Address            *string `json:"address"`
	InstitutionName    *string `json:"institution_name"`
	InstitutionAddress *string `json:"institution_address"`
	InstitutionRole    *string `json:"institution_role"`
}

func (r UpdateProfileRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			m[col] = strings.TrimSpace(*v)
		}
	}
	set("full_name", r.FullName)
	set("whatsapp", r.WhatsApp)
	set("province", r.Province)
	set("city", r.City)
	set("district", r.District)
	set("village", r.Village)
	set("address", r.Address)
	set("institution_name", r.InstitutionName)
	set("institution_address", r.InstitutionAddress)
	set("institution_role", r.InstitutionRole)
	if r.BirthDate != nil {
		if t, err := time.Parse("2006-01-02", *r.BirthDate); err == nil {
			m["birth_date"] = t
		}
	}
	return m
}

/* ===================== RESPONSE ===================== */

type UserResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	FullName           string     `json:"full_name"`
	Role               string     `json:"role"`
	BirthDate          string     `json:"birth_date,omitempty"`
	WhatsApp           string     `json:"whatsapp"`
	UserType           string     `json:"user_type"`
	ReferralSource     string     `json:"referral_source,omitempty"`
	Province           string     `json:"province,omitempty"`
	City               string     `json:"city,omitempty"`
	District           string     `json:"district,omitempty"`
	Village            string     `json:"village,omitempty"`
	Address            string     `json:"address,omitempty"`
	InstitutionName    string     `json:"institution_name,omitempty"`
	InstitutionAddress string     `json:"institution_address,omitempty"`
	InstitutionRole    string     `json:"institution_role,omitempty"`
	ReferralCode       string     `json:"referral_code"`
	ReferralCount      int        `json:"referral_count"`
	ReferralBalance    int64      `json:"referral_balance"`
	FreeTestStatus     string     `json:"free_test_status"`
	PaidTestStatus     string     `json:"paid_test_status"`
	PaymentStatus      string     `json:"payment_status"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func FromUserModel(u *userModel.UserModel) UserResponse {
	r := UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		FullName:           u.FullName,
		Role:               u.Role,
		WhatsApp:           u.WhatsApp,
		UserType:           u.UserType,
		ReferralSource:     u.ReferralSource,
		Province:           u.Province,
		City:               u.City,
		District:           u.District,
		Village:            u.Village,
		Address:            u.Address,
		InstitutionName:    u.InstitutionName,
		InstitutionAddress: u.InstitutionAddress,
		InstitutionRole:    u.InstitutionRole,
		ReferralCode:       u.ReferralCode,
		ReferralCount:      u.ReferralCount,
		ReferralBalance:    u.ReferralBalance,
		FreeTestStatus:     u.FreeTestStatus,
		PaidTestStatus:     u.PaidTestStatus,
		PaymentStatus:      u.PaymentStatus,
		LastLoginAt:        u.LastLoginAt,
		CreatedAt:          u.CreatedAt,
	}
	if u.BirthDate != nil {
		r.BirthDate = u.BirthDate.Format("2006-01-02")
	}
	return r
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

type ReferralLinkResponse struct {
	ReferralCode    string `json:"referral_code"`
	ReferralLink    string `json:"referral_link"`
	ReferralCount   int    `json:"referral_count"`
	ReferralBalance int64  `json:"referral_balance"`
}
