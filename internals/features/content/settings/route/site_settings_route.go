package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/content/settings/controller"
)

func SettingsPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSiteSettingsController(db)
	r.Get("/settings", ctrl.GetPublic)
}

func SettingsAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSiteSettingsController(db)
	r.Get("/settings", ctrl.Get)
	r.Put("/settings", ctrl.Update)
}
