package dto

import (
	"strings"
	"time"

	"newmeclass_backend/internals/features/certificates/user_certificates/model"
)

// UpdateTemplateRequest: semua field opsional (partial update).
type UpdateTemplateRequest struct {
	TitleText      *string `json:"title_text" validate:"omitempty,max=100"`
	SubtitleText   *string `json:"subtitle_text" validate:"omitempty,max=150"`
	CompletionText *string `json:"completion_text" validate:"omitempty,max=200"`
	SignerName     *string `json:"signer_name" validate:"omitempty,max=150"`
	SignerTitle    *string `json:"signer_title" validate:"omitempty,max=100"`
	TextColor      *string `json:"text_color" validate:"omitempty,hexcolor,len=7"`
	AccentColor    *string `json:"accent_color" validate:"omitempty,hexcolor,len=7"`
}

func (r UpdateTemplateRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	set := func(col string, v *string) {
		if v != nil && strings.TrimSpace(*v) != "" {
			m[col] = strings.TrimSpace(*v)
		}
	}
	set("title_text", r.TitleText)
	set("subtitle_text", r.SubtitleText)
	set("completion_text", r.CompletionText)
	set("signer_name", r.SignerName)
	set("signer_title", r.SignerTitle)
	set("text_color", r.TextColor)
	set("accent_color", r.AccentColor)
	return m
}

type IssueCertificateRequest struct {
	UserID         string `json:"user_id" validate:"required,uuid"`
	CourseName     string `json:"course_name" validate:"omitempty,max=200"`
	CompletionDate string `json:"completion_date" validate:"omitempty,datetime=2006-01-02"`
}

// VerifyResponse: data publik saja (tanpa email).
type VerifyResponse struct {
	Valid             bool       `json:"valid"`
	Message           string     `json:"message,omitempty"`
	CertificateNumber string     `json:"certificate_number"`
	UserName          string     `json:"user_name,omitempty"`
	CourseName        string     `json:"course_name,omitempty"`
	DominantLabel     string     `json:"dominant_label,omitempty"`
	CompletionDate    string     `json:"completion_date,omitempty"`
	IssuedAt          *time.Time `json:"issued_at,omitempty"`
}

func NewVerifyResponse(c *model.UserCertificateModel) VerifyResponse {
	issued := c.UserCertIssuedAt
	return VerifyResponse{
		Valid:             true,
		CertificateNumber: c.UserCertNumber,
		UserName:          c.UserCertRecipientName,
		CourseName:        c.UserCertCourseName,
		DominantLabel:     c.UserCertDominantLabel,
		CompletionDate:    c.UserCertCompletionDate,
		IssuedAt:          &issued,
	}
}
