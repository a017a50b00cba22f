package model

import "time"

// SiteSettingsModel: satu baris (id = 1) pengaturan umum platform.
type SiteSettingsModel struct {
	ID                 int       `gorm:"primaryKey" json:"id"`
	SiteName           string    `gorm:"size:100;not null;default:'NEWME CLASS'" json:"site_name"`
	SiteTitle          string    `gorm:"size:200" json:"site_title"`
	SiteDescription    string    `gorm:"type:text" json:"site_description"`
	TestPrice          int64     `gorm:"not null;default:50000" json:"test_price"`
	RequirePayment     bool      `gorm:"not null;default:true" json:"require_payment"`
	AllowRegistration  bool      `gorm:"not null;default:true" json:"allow_registration"`
	MaintenanceMode    bool      `gorm:"not null;default:false" json:"maintenance_mode"`
	MaintenanceMessage string    `gorm:"type:text" json:"maintenance_message"`
	TestInstructions   string    `gorm:"type:text" json:"test_instructions"`
	ContactEmail       string    `gorm:"size:150" json:"contact_email"`
	ContactWhatsApp    string    `gorm:"column:contact_whatsapp;size:30" json:"contact_whatsapp"`
	ContactPhone       string    `gorm:"size:30" json:"contact_phone"`
	Address            string    `gorm:"type:text" json:"address"`
	Instagram          string    `gorm:"size:100" json:"instagram"`
	BankName           string    `gorm:"size:100" json:"bank_name"`
	BankAccount        string    `gorm:"size:50" json:"bank_account"`
	BankHolder         string    `gorm:"size:150" json:"bank_holder"`
	PaymentInstruction string    `gorm:"type:text" json:"payment_instruction"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SiteSettingsModel) TableName() string {
	return "site_settings"
}

func DefaultSiteSettings(price int64) SiteSettingsModel {
	return SiteSettingsModel{
		ID:                1,
		SiteName:          "NEWME CLASS",
		SiteTitle:         "NEWME CLASS - Kelas Peduli Talenta",
		SiteDescription:   "Platform pengembangan talenta dan potensi diri",
		TestPrice:         price,
		RequirePayment:    true,
		AllowRegistration: true,
		TestInstructions:  "Jawablah setiap pertanyaan dengan jujur sesuai kondisi Anda saat ini. Tidak ada jawaban benar atau salah.",
		ContactEmail:      "newmeclass@gmail.com",
		ContactWhatsApp:   "6289502671691",
		Instagram:         "@newmeclass",
	}
}

// PublicView: tanpa data rekening, rekening hanya di endpoint harga tes.
func (s SiteSettingsModel) PublicView() map[string]any {
	return map[string]any{
		"site_name":           s.SiteName,
		"site_title":          s.SiteTitle,
		"site_description":    s.SiteDescription,
		"test_price":          s.TestPrice,
		"require_payment":     s.RequirePayment,
		"allow_registration":  s.AllowRegistration,
		"maintenance_mode":    s.MaintenanceMode,
		"maintenance_message": s.MaintenanceMessage,
		"test_instructions":   s.TestInstructions,
		"contact_email":       s.ContactEmail,
		"contact_whatsapp":    s.ContactWhatsApp,
		"contact_phone":       s.ContactPhone,
		"address":             s.Address,
		"instagram":           s.Instagram,
	}
}
