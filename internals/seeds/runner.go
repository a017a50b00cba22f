package seeds

import (
	"log"

	"gorm.io/gorm"

	certService "newmeclass_backend/internals/features/certificates/user_certificates/service"
	settingsService "newmeclass_backend/internals/features/content/settings/service"
	referralService "newmeclass_backend/internals/features/referrals/service"
	"newmeclass_backend/internals/seeds/questions"
)

// RunAllSeeds: katalog soal + baris singleton (settings, template sertifikat, referral).
// Aman dijalankan berulang.
func RunAllSeeds(db *gorm.DB) error {
	//* Soal
	created, updated, err := questions.SeedDefaultQuestions(db)
	if err != nil {
		return err
	}
	log.Printf("[INFO] ✅ Seed soal: %d baru, %d diperbarui", created, updated)

	//* Singleton
	if _, err := settingsService.Get(db); err != nil {
		return err
	}
	if _, err := certService.GetTemplate(db); err != nil {
		return err
	}
	if _, err := referralService.GetSettings(db); err != nil {
		return err
	}
	log.Println("[INFO] ✅ Seed pengaturan default selesai")
	return nil
}
