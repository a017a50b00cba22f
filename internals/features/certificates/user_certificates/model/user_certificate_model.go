package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultCourseName = "Tes Kepribadian & Bakat NEWME CLASS"

// UserCertificateModel: sertifikat yang sudah diterbitkan, nomor unik dipakai untuk verifikasi publik.
type UserCertificateModel struct {
	UserCertID             uuid.UUID  `json:"user_cert_id" gorm:"column:user_cert_id;type:uuid;primaryKey"`
	UserCertUserID         uuid.UUID  `json:"user_cert_user_id" gorm:"column:user_cert_user_id;type:uuid;not null;index"`
	UserCertNumber         string     `json:"user_cert_number" gorm:"column:user_cert_number;size:40;uniqueIndex;not null"`
	UserCertRecipientName  string     `json:"user_cert_recipient_name" gorm:"column:user_cert_recipient_name;size:150;not null"`
	UserCertRecipientEmail string     `json:"user_cert_recipient_email" gorm:"column:user_cert_recipient_email;size:255"`
	UserCertCourseName     string     `json:"user_cert_course_name" gorm:"column:user_cert_course_name;size:200;not null"`
	UserCertCompletionDate string     `json:"user_cert_completion_date" gorm:"column:user_cert_completion_date;size:20"`
	UserCertAttemptID      *uuid.UUID `json:"user_cert_attempt_id,omitempty" gorm:"column:user_cert_attempt_id;type:uuid"`
	UserCertDominantLabel  string     `json:"user_cert_dominant_label,omitempty" gorm:"column:user_cert_dominant_label;size:50"`
	UserCertIssuedBy       *uuid.UUID `json:"user_cert_issued_by,omitempty" gorm:"column:user_cert_issued_by;type:uuid"`
	UserCertIssuedAt       time.Time  `json:"user_cert_issued_at" gorm:"column:user_cert_issued_at;not null;index"`
	CreatedAt              time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (UserCertificateModel) TableName() string {
	return "user_certificates"
}

func (m *UserCertificateModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserCertID == uuid.Nil {
		m.UserCertID = uuid.New()
	}
	if m.UserCertIssuedAt.IsZero() {
		m.UserCertIssuedAt = time.Now()
	}
	return nil
}
