package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"newmeclass_backend/internals/middlewares/logger"
)

// SetupMiddlewares: urutan penting (recover paling luar).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
