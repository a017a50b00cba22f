package model

import (
	"time"

	"github.com/google/uuid"
)

const CertificateTemplateID = 1

const (
	AssetBackground = "background"
	AssetLogo       = "logo"
	AssetSignature  = "signature"
)

// CertificateTemplateModel: satu baris (id=1) pengaturan tampilan sertifikat.
type CertificateTemplateModel struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	TitleText      string     `json:"title_text" gorm:"size:100;not null"`
	SubtitleText   string     `json:"subtitle_text" gorm:"size:150"`
	CompletionText string     `json:"completion_text" gorm:"size:200"`
	SignerName     string     `json:"signer_name" gorm:"size:150"`
	SignerTitle    string     `json:"signer_title" gorm:"size:100"`
	TextColor      string     `json:"text_color" gorm:"size:7;not null;default:'#000000'"`
	AccentColor    string     `json:"accent_color" gorm:"size:7;not null;default:'#FFD700'"`
	BackgroundURL  string     `json:"background_url" gorm:"type:text"`
	LogoURL        string     `json:"logo_url" gorm:"type:text"`
	SignatureURL   string     `json:"signature_url" gorm:"type:text"`
	UpdatedBy      *uuid.UUID `json:"updated_by,omitempty" gorm:"type:uuid"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (CertificateTemplateModel) TableName() string {
	return "certificate_templates"
}

func DefaultCertificateTemplate() CertificateTemplateModel {
	return CertificateTemplateModel{
		ID:             CertificateTemplateID,
		TitleText:      "SERTIFIKAT",
		SubtitleText:   "Diberikan kepada",
		CompletionText: "Telah berhasil menyelesaikan",
		SignerName:     "Director NEWME CLASS",
		SignerTitle:    "Direktur",
		TextColor:      "#000000",
		AccentColor:    "#FFD700",
	}
}

// AssetColumn: nama kolom untuk tipe aset upload, "" kalau tipe tidak dikenal.
func AssetColumn(assetType string) string {
	switch assetType {
	case AssetBackground:
		return "background_url"
	case AssetLogo:
		return "logo_url"
	case AssetSignature:
		return "signature_url"
	}
	return ""
}
