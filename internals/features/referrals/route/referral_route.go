package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/referrals/controller"
)

func ReferralPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReferralController(db)
	r.Get("/referrals/settings", ctrl.GetSettings) // 📄 info program referral
}

// /api/a/referrals (admin)
func ReferralAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReferralController(db)

	g := r.Group("/referrals")
	g.Get("/settings", ctrl.GetSettings)
	g.Put("/settings", ctrl.UpdateSettings)
	g.Get("/leaderboard", ctrl.Leaderboard)
	g.Get("/transactions", ctrl.ListTransactions)
	g.Get("/stats", ctrl.Stats)
}
