package dto

import (
	"time"

	"github.com/google/uuid"
)

// UpdateReferralSettingsRequest: semua field opsional (partial update).
type UpdateReferralSettingsRequest struct {
	BonusPerReferral   *int64    `json:"bonus_per_referral" validate:"omitempty,gte=0"`
	MinimumWithdraw    *int64    `json:"minimum_withdraw" validate:"omitempty,gte=0"`
	IsActive           *bool     `json:"is_active"`
	Title              *string   `json:"title" validate:"omitempty,max=200"`
	Description        *string   `json:"description"`
	TermsAndConditions *string   `json:"terms_and_conditions"`
	Benefits           *[]string `json:"benefits"`
}

func (r UpdateReferralSettingsRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.BonusPerReferral != nil {
		m["bonus_per_referral"] = *r.BonusPerReferral
	}
	if r.MinimumWithdraw != nil {
		m["minimum_withdraw"] = *r.MinimumWithdraw
	}
	if r.IsActive != nil {
		m["is_active"] = *r.IsActive
	}
	if r.Title != nil && *r.Title != "" {
		m["title"] = *r.Title
	}
	if r.Description != nil && *r.Description != "" {
		m["description"] = *r.Description
	}
	if r.TermsAndConditions != nil && *r.TermsAndConditions != "" {
		m["terms_and_conditions"] = *r.TermsAndConditions
	}
	return m
}

type LeaderboardItem struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	ReferralCode    string    `json:"referral_code"`
	ReferralCount   int       `json:"referral_count"`
	ReferralBalance int64     `json:"referral_balance"`
}

// TransactionItem: transaksi + nama/email kedua pihak (hasil join).
type TransactionItem struct {
	ID             uuid.UUID  `json:"id"`
	ReferrerID     uuid.UUID  `json:"referrer_id"`
	ReferrerName   string     `json:"referrer_name"`
	ReferrerEmail  string     `json:"referrer_email"`
	ReferredUserID uuid.UUID  `json:"referred_user_id"`
	ReferredName   string     `json:"referred_name"`
	ReferredEmail  string     `json:"referred_email"`
	ReferralCode   string     `json:"referral_code"`
	BonusAmount    int64      `json:"bonus_amount"`
	Status         string     `json:"status"`
	OrderID        *string    `json:"order_id,omitempty"`
	CreditedAt     *time.Time `json:"credited_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type ReferralStats struct {
	TotalReferrers int64 `json:"total_referrers"`
	TotalReferrals int64 `json:"total_referrals"`
	PendingBonus   int64 `json:"pending_bonus"`
	TotalBonusPaid int64 `json:"total_bonus_paid"`
}
