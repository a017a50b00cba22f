package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certificateRoute "newmeclass_backend/internals/features/certificates/user_certificates/route"
)

func CertificatePublicRoutes(public fiber.Router, db *gorm.DB) {
	certificateRoute.CertificatePublicRoutes(public, db)
}

func CertificateUserRoutes(user fiber.Router, db *gorm.DB) {
	certificateRoute.CertificateUserRoutes(user, db)
}

func CertificateAdminRoutes(admin fiber.Router, db *gorm.DB) {
	certificateRoute.CertificateAdminRoutes(admin, db)
}
