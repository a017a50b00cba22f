package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/tests/results/controller"
	"newmeclass_backend/internals/features/tests/results/service"
	"newmeclass_backend/internals/middlewares"
)

// /api/u
func TestUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTestController(service.NewDefaultTestService(db))

	r.Get("/test-access", ctrl.Access)

	g := r.Group("/tests")
	g.Post("/submit", middlewares.SubmitTestRateLimiter(), ctrl.Submit)
	g.Get("/results", ctrl.ListMine)
	g.Get("/results/latest", ctrl.Latest)
	g.Get("/results/:id", ctrl.GetMine)
}

// /api/public
func TestPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTestController(service.NewDefaultTestService(db))

	g := r.Group("/tests")
	g.Get("/templates/:label", ctrl.Template)
	g.Get("/stats", ctrl.Stats)
}

// /api/a
func TestAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTestController(service.NewDefaultTestService(db))
	r.Get("/users/:id/answers", ctrl.UserAnswers)
}
