package database

import (
	"log"

	"gorm.io/gorm"

	certificateModel "newmeclass_backend/internals/features/certificates/user_certificates/model"
	articleModel "newmeclass_backend/internals/features/content/articles/model"
	bannerModel "newmeclass_backend/internals/features/content/banners/model"
	productModel "newmeclass_backend/internals/features/content/products/model"
	runningInfoModel "newmeclass_backend/internals/features/content/running_infos/model"
	settingsModel "newmeclass_backend/internals/features/content/settings/model"
	paymentModel "newmeclass_backend/internals/features/payments/model"
	referralModel "newmeclass_backend/internals/features/referrals/model"
	questionModel "newmeclass_backend/internals/features/tests/questions/model"
	resultModel "newmeclass_backend/internals/features/tests/results/model"
	authModel "newmeclass_backend/internals/features/users/auth/model"
	userModel "newmeclass_backend/internals/features/users/user/model"
)

// Models: urutan mengikuti dependensi (users dulu).
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&questionModel.QuestionModel{},
		&resultModel.TestAttemptModel{},
		&paymentModel.PaymentModel{},
		&paymentModel.PaymentGatewayEventModel{},
		&referralModel.ReferralSettingsModel{},
		&referralModel.ReferralTransactionModel{},
		&certificateModel.CertificateTemplateModel{},
		&certificateModel.UserCertificateModel{},
		&articleModel.ArticleModel{},
		&bannerModel.BannerModel{},
		&productModel.ProductModel{},
		&runningInfoModel.RunningInfoModel{},
		&settingsModel.SiteSettingsModel{},
	}
}

// Migrate: AutoMigrate semua tabel + index parsial free attempt.
func Migrate(db *gorm.DB) error {
	log.Println("[INFO] 🛠️ Menjalankan AutoMigrate...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	if err := resultModel.EnsureIndexes(db); err != nil {
		return err
	}
	log.Println("[INFO] ✅ Migrasi selesai")
	return nil
}
