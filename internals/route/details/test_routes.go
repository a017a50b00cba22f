package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	questionRoute "newmeclass_backend/internals/features/tests/questions/route"
	testRoute "newmeclass_backend/internals/features/tests/results/route"
)

func TestPublicRoutes(public fiber.Router, db *gorm.DB) {
	questionRoute.QuestionPublicRoutes(public, db)
	testRoute.TestPublicRoutes(public, db)
}

func TestUserRoutes(user fiber.Router, db *gorm.DB) {
	testRoute.TestUserRoutes(user, db)
}

func TestAdminRoutes(admin fiber.Router, db *gorm.DB) {
	questionRoute.QuestionAdminRoutes(admin, db)
	testRoute.TestAdminRoutes(admin, db)
}
