package dto

import "strings"

// UpdateSiteSettingsRequest: semua opsional, hanya field yang dikirim yang diubah.
type UpdateSiteSettingsRequest struct {
	SiteName           *string `json:"site_name" validate:"omitempty,min=2,max=100"`
	SiteTitle          *string `json:"site_title" validate:"omitempty,max=200"`
	SiteDescription    *string `json:"site_description"`
	TestPrice          *int64  `json:"test_price" validate:"omitempty,gt=0"`
	RequirePayment     *bool   `json:"require_payment"`
	AllowRegistration  *bool   `json:"allow_registration"`
	MaintenanceMode    *bool   `json:"maintenance_mode"`
	MaintenanceMessage *string `json:"maintenance_message"`
	TestInstructions   *string `json:"test_instructions"`
	ContactEmail       *string `json:"contact_email" validate:"omitempty,email"`
	ContactWhatsApp    *string `json:"contact_whatsapp" validate:"omitempty,numeric,min=8,max=20"`
	ContactPhone       *string `json:"contact_phone" validate:"omitempty,max=30"`
	Address            *string `json:"address"`
	Instagram          *string `json:"instagram" validate:"omitempty,max=100"`
	BankName           *string `json:"bank_name" validate:"omitempty,max=100"`
	BankAccount        *string `json:"bank_account" validate:"omitempty,max=50"`
	BankHolder         *string `json:"bank_holder" validate:"omitempty,max=150"`
	PaymentInstruction *string `json:"payment_instruction"`
}

func (r UpdateSiteSettingsRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	str := func(col string, v *string) {
		if v != nil {
			m[col] = strings.TrimSpace(*v)
		}
	}
	flag := func(col string, v *bool) {
		if v != nil {
			m[col] = *v
		}
	}

	str("site_name", r.SiteName)
	str("site_title", r.SiteTitle)
	str("site_description", r.SiteDescription)
	if r.TestPrice != nil {
		m["test_price"] = *r.TestPrice
	}
	flag("require_payment", r.RequirePayment)
	flag("allow_registration", r.AllowRegistration)
	flag("maintenance_mode", r.MaintenanceMode)
	str("maintenance_message", r.MaintenanceMessage)
	str("test_instructions", r.TestInstructions)
	str("contact_email", r.ContactEmail)
	str("contact_whatsapp", r.ContactWhatsApp)
	str("contact_phone", r.ContactPhone)
	str("address", r.Address)
	str("instagram", r.Instagram)
	str("bank_name", r.BankName)
	str("bank_account", r.BankAccount)
	str("bank_holder", r.BankHolder)
	str("payment_instruction", r.PaymentInstruction)
	return m
}
