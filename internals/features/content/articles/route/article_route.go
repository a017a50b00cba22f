package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/configs"
	"newmeclass_backend/internals/features/content/articles/controller"
	helper "newmeclass_backend/internals/helpers"
)

func ArticlePublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewArticleController(db, nil)

	g := r.Group("/articles")
	g.Get("/", ctrl.ListPublic)    // 📄 artikel terbit
	g.Get("/:slug", ctrl.GetPublic) // 🔍 detail (slug / id)
}

// /api/a/articles (admin)
func ArticleAdminRoutes(r fiber.Router, db *gorm.DB) {
	storage := helper.NewLocalStorage(configs.UploadDir, configs.PublicBaseURL)
	ctrl := controller.NewArticleController(db, storage)

	g := r.Group("/articles")
	g.Get("/", ctrl.ListAdmin)
	g.Get("/stats", ctrl.Stats)
	g.Post("/", ctrl.Create)
	g.Post("/upload-image", ctrl.UploadImage)
	g.Get("/:id", ctrl.GetByID)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
