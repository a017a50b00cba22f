package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/features/users/user/controller"
)

// /api/a/users
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserAdminController(db)

	g := r.Group("/users")
	g.Get("/", ctrl.List)
	g.Get("/stats", ctrl.Stats) // 📊 sebelum /:id
	g.Get("/:id", ctrl.Detail)
	g.Put("/:id", ctrl.Update)
	g.Put("/:id/ban", ctrl.Ban)
	g.Put("/:id/unban", ctrl.Unban)
	g.Delete("/:id", ctrl.Delete)
}
