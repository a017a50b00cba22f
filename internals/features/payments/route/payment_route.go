package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/configs"
	"newmeclass_backend/internals/features/payments/controller"
	"newmeclass_backend/internals/features/payments/service"
	helper "newmeclass_backend/internals/helpers"
	"newmeclass_backend/internals/middlewares"
)

func newController(db *gorm.DB) *controller.PaymentController {
	var gw service.Gateway
	if configs.MidtransServer != "" {
		gw = service.NewMidtransGateway(configs.MidtransServer, configs.MidtransProd)
	}
	storage := helper.NewLocalStorage(configs.UploadDir, configs.PublicBaseURL)
	return controller.NewPaymentController(db, gw, configs.MidtransServer, configs.MidtransClient, storage)
}

// Webhook di luar /api/u & /api/a (tanpa JWT)
func PaymentWebhookRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := newController(db)
	app.Post("/api/payments/midtrans/notification", middlewares.WebhookRateLimiter(), ctrl.MidtransWebhook)
}

// /api/public
func PaymentPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := newController(db)
	r.Get("/payments/test-price", ctrl.TestPrice)
}

// /api/u
func PaymentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := newController(db)

	g := r.Group("/payments")
	g.Get("/", ctrl.ListMine)
	g.Post("/snap", ctrl.CreateSnap)
	g.Post("/proof", ctrl.UploadProof)
	g.Get("/:order_id/status", ctrl.Status)
}

// /api/a
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := newController(db)

	g := r.Group("/payments")
	g.Get("/", ctrl.ListAdmin)
	g.Get("/stats", ctrl.Stats)
	g.Put("/:id/review", ctrl.Review)
}
