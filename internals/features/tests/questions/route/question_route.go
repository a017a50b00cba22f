package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/tests/questions/controller"
)

// /api/public/questions
func QuestionPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewQuestionController(db)
	r.Get("/questions", ctrl.ListPublic)
}

// /api/a/questions
func QuestionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewQuestionController(db)

	g := r.Group("/questions")
	g.Get("/", ctrl.ListAdmin)
	g.Get("/categories", ctrl.Categories) // 📂 sebelum /:id
	g.Put("/reorder", ctrl.Reorder)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.GetByID)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
