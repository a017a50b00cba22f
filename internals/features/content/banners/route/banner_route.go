package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/configs"
	"newmeclass_backend/internals/features/content/banners/controller"
	helper "newmeclass_backend/internals/helpers"
)

func BannerPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewBannerController(db, nil)
	r.Get("/banners", ctrl.ListActive) // 🎡 slider & popup aktif
}

// /api/a/banners (admin)
func BannerAdminRoutes(r fiber.Router, db *gorm.DB) {
	storage := helper.NewLocalStorage(configs.UploadDir, configs.PublicBaseURL)
	ctrl := controller.NewBannerController(db, storage)

	g := r.Group("/banners")
	g.Get("/", ctrl.ListAdmin)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.GetByID)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
