package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/constants"
	authMiddleware "newmeclass_backend/internals/middlewares/auth"
	routeDetails "newmeclass_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH & WEBHOOK (tanpa group) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	log.Println("[INFO] Setting up PaymentWebhookRoutes...")
	routeDetails.PaymentWebhookRoutes(app, db)

	// ===================== GROUPS =====================
	public := app.Group("/api/public")

	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("admin panel"), constants.AdminAndAbove),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserPublicRoutes(public, db)
	routeDetails.UserRoutes(user, db)
	routeDetails.UserAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Test routes...")
	routeDetails.TestPublicRoutes(public, db)
	routeDetails.TestUserRoutes(user, db)
	routeDetails.TestAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Payment routes...")
	routeDetails.PaymentPublicRoutes(public, db)
	routeDetails.PaymentUserRoutes(user, db)
	routeDetails.PaymentAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Certificate routes...")
	routeDetails.CertificatePublicRoutes(public, db)
	routeDetails.CertificateUserRoutes(user, db)
	routeDetails.CertificateAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Content routes...")
	routeDetails.ContentPublicRoutes(public, db)
	routeDetails.ContentAdminRoutes(admin, db)

	log.Println("[INFO] ✅ Semua route terpasang")
}
