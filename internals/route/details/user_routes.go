package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	referralRoute "newmeclass_backend/internals/features/referrals/route"
	authRoute "newmeclass_backend/internals/features/users/auth/route"
	userRoute "newmeclass_backend/internals/features/users/user/route"
)

// 👤 /api/u
func UserRoutes(user fiber.Router, db *gorm.DB) {
	authRoute.AuthUserRoutes(user, db)
}

// 🔐 /api/a
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	userRoute.UserAdminRoutes(admin, db)
	referralRoute.ReferralAdminRoutes(admin, db)
}

func UserPublicRoutes(public fiber.Router, db *gorm.DB) {
	referralRoute.ReferralPublicRoutes(public, db)
}
