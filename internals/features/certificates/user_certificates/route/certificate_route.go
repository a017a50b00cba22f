package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"newmeclass_backend/internals/configs"
	"newmeclass_backend/internals/features/certificates/user_certificates/controller"
	helper "newmeclass_backend/internals/helpers"
)

func newController(db *gorm.DB) *controller.CertificateController {
	storage := helper.NewLocalStorage(configs.UploadDir, configs.PublicBaseURL)
	return controller.NewCertificateController(db, storage, configs.FrontendURL)
}

// /api/public/certificates
func CertificatePublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := newController(db)

	g := r.Group("/certificates")
	g.Get("/verify/:number", ctrl.Verify)
	g.Get("/download/:number", ctrl.Download) // 📄 PDF + QR verifikasi
}

// /api/u/certificates
func CertificateUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := newController(db)

	g := r.Group("/certificates")
	g.Get("/eligibility", ctrl.Eligibility)
	g.Get("/result-pdf", ctrl.ResultPDF)
}

// /api/a/certificates (admin)
func CertificateAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := newController(db)

	g := r.Group("/certificates")
	g.Get("/template", ctrl.GetTemplate)
	g.Put("/template", ctrl.UpdateTemplate)
	g.Post("/template/upload/:asset_type", ctrl.UploadAsset)
	g.Get("/issued", ctrl.ListIssued)
	g.Post("/issue", ctrl.Issue)
}
