package dto

import (
	"time"

	"newmeclass_backend/internals/features/payments/model"
)

type ReviewPaymentRequest struct {
	Approve *bool  `json:"approve" validate:"required"`
	Note    string `json:"note" validate:"omitempty,max=500"`
}

type SnapResponse struct {
	OrderID     string     `json:"order_id"`
	Amount      int64      `json:"amount"`
	SnapToken   string     `json:"snap_token"`
	RedirectURL string     `json:"redirect_url"`
	ClientKey   string     `json:"client_key"`
	ExpiredAt   *time.Time `json:"expired_at,omitempty"`
}

func NewSnapResponse(p *model.PaymentModel, clientKey string) SnapResponse {
	out := SnapResponse{
		OrderID:   p.PaymentOrderID,
		Amount:    p.PaymentAmount,
		ClientKey: clientKey,
		ExpiredAt: p.PaymentExpiredAt,
	}
	if p.PaymentSnapToken != nil {
		out.SnapToken = *p.PaymentSnapToken
	}
	if p.PaymentRedirectURL != nil {
		out.RedirectURL = *p.PaymentRedirectURL
	}
	return out
}

// baris list admin: payment + identitas user
type AdminPaymentItem struct {
	model.PaymentModel
	UserFullName string `json:"user_full_name"`
	UserEmail    string `json:"user_email"`
}
