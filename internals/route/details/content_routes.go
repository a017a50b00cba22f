package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	articleRoute "newmeclass_backend/internals/features/content/articles/route"
	bannerRoute "newmeclass_backend/internals/features/content/banners/route"
	productRoute "newmeclass_backend/internals/features/content/products/route"
	runningInfoRoute "newmeclass_backend/internals/features/content/running_infos/route"
	settingsRoute "newmeclass_backend/internals/features/content/settings/route"
)

func ContentPublicRoutes(public fiber.Router, db *gorm.DB) {
	articleRoute.ArticlePublicRoutes(public, db)
	bannerRoute.BannerPublicRoutes(public, db)
	productRoute.ProductPublicRoutes(public, db)
	runningInfoRoute.RunningInfoPublicRoutes(public, db)
	settingsRoute.SettingsPublicRoutes(public, db)
}

func ContentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	articleRoute.ArticleAdminRoutes(admin, db)
	bannerRoute.BannerAdminRoutes(admin, db)
	productRoute.ProductAdminRoutes(admin, db)
	runningInfoRoute.RunningInfoAdminRoutes(admin, db)
	settingsRoute.SettingsAdminRoutes(admin, db)
}
