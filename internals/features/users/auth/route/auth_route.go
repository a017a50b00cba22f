// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "newmeclass_backend/internals/features/users/auth/controller"
	rateLimiter "newmeclass_backend/internals/middlewares"
	authMiddleware "newmeclass_backend/internals/middlewares/auth"
)

// Base: /api/auth
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)

	// 🔐 Butuh token
	baseAuth.Post("/logout", authMiddleware.AuthMiddleware(db), authController.Logout)
}

// Base: /api/u (sudah lewat AuthMiddleware)
func AuthUserRoutes(user fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	user.Get("/me", authController.Me)
	user.Put("/profile", authController.UpdateProfile)
	user.Put("/change-password", authController.ChangePassword)
	user.Get("/referral-link", authController.ReferralLink)
}
