package dto

import (
	"strings"

	userModel "newmeclass_backend/internals/features/users/user/model"
)

type AdminUpdateUserRequest struct {
	FullName        *string `json:"full_name" validate:"omitempty,min=2,max=150"`
	WhatsApp        *string `json:"whatsapp" validate:"omitempty,min=10,max=30"`
	Role            *string `json:"role" validate:"omitempty,oneof=user admin superadmin"`
	UserType        *string `json:"user_type" validate:"omitempty,oneof=individual institution"`
	IsActive        *bool   `json:"is_active"`
	PaymentStatus   *string `json:"payment_status" validate:"omitempty,oneof=unpaid pending approved rejected"`
	FreeTestStatus  *string `json:"free_test_status" validate:"omitempty,oneof=not_started in_progress completed"`
	PaidTestStatus  *string `json:"paid_test_status" validate:"omitempty,oneof=not_started pending_payment paid in_progress completed"`
	InstitutionName *string `json:"institution_name" validate:"omitempty,max=200"`
}

func (r AdminUpdateUserRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.FullName != nil {
		m["full_name"] = strings.TrimSpace(*r.FullName)
	}
	if r.WhatsApp != nil {
		m["whatsapp"] = strings.TrimSpace(*r.WhatsApp)
	}
	if r.Role != nil {
		m["role"] = *r.Role
	}
	if r.UserType != nil {
		m["user_type"] = *r.UserType
	}
	if r.IsActive != nil {
		m["is_active"] = *r.IsActive
	}
	if r.PaymentStatus != nil {
		m["payment_status"] = *r.PaymentStatus
	}
	if r.FreeTestStatus != nil {
		m["free_test_status"] = *r.FreeTestStatus
	}
	if r.PaidTestStatus != nil {
		m["paid_test_status"] = *r.PaidTestStatus
	}
	if r.InstitutionName != nil {
		m["institution_name"] = strings.TrimSpace(*r.InstitutionName)
	}
	return m
}

type BanUserRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=255"`
}

type UserStats struct {
	Total             int64 `json:"total"`
	Active            int64 `json:"active"`
	Banned            int64 `json:"banned"`
	Unpaid            int64 `json:"unpaid"`
	PendingPayment    int64 `json:"pending_payment"`
	Paid              int64 `json:"paid"`
	FreeTestCompleted int64 `json:"free_test_completed"`
	PaidTestCompleted int64 `json:"paid_test_completed"`
	NewToday          int64 `json:"new_today"`
}

type UserDetail struct {
	User                 userModel.UserModel `json:"user"`
	ReferredBy           *ReferrerBrief      `json:"referred_by,omitempty"`
	ReferralTransactions any                 `json:"referral_transactions"`
	Payments             any                 `json:"payments"`
	TestAttempts         int64               `json:"test_attempts"`
}

type ReferrerBrief struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	ReferralCode string `json:"referral_code"`
}
