package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/configs"
	"newmeclass_backend/internals/features/content/products/controller"
	helper "newmeclass_backend/internals/helpers"
)

func ProductPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewProductController(db, nil)

	g := r.Group("/products")
	g.Get("/", ctrl.ListPublic)
	g.Get("/categories", ctrl.Categories)
	g.Get("/:id", ctrl.GetPublic)
}

// /api/a/products (admin)
func ProductAdminRoutes(r fiber.Router, db *gorm.DB) {
	storage := helper.NewLocalStorage(configs.UploadDir, configs.PublicBaseURL)
	ctrl := controller.NewProductController(db, storage)

	g := r.Group("/products")
	g.Get("/", ctrl.ListAdmin)
	g.Get("/stats", ctrl.Stats)
	g.Post("/", ctrl.Create)
	g.Post("/upload-image", ctrl.UploadImage)
	g.Get("/:id", ctrl.GetByID)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
