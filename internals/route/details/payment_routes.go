package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentRoute "newmeclass_backend/internals/features/payments/route"
)

// Webhook Midtrans di luar group JWT
func PaymentWebhookRoutes(app *fiber.App, db *gorm.DB) {
	paymentRoute.PaymentWebhookRoutes(app, db)
}

func PaymentPublicRoutes(public fiber.Router, db *gorm.DB) {
	paymentRoute.PaymentPublicRoutes(public, db)
}

func PaymentUserRoutes(user fiber.Router, db *gorm.DB) {
	paymentRoute.PaymentUserRoutes(user, db)
}

func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	paymentRoute.PaymentAdminRoutes(admin, db)
}
