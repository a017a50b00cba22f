package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/content/running_infos/controller"
)

func RunningInfoPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewRunningInfoController(db)
	r.Get("/running-info", ctrl.ListActive)
}

// /api/a/running-info (admin)
func RunningInfoAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewRunningInfoController(db)

	g := r.Group("/running-info")
	g.Get("/", ctrl.ListAll)
	g.Post("/", ctrl.Create)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
