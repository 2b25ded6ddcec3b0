package adminRoutes

import (
	adminController "lotuslight/controllers/admin"
	"lotuslight/middleware"
	"lotuslight/models"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin")

	adminGroup.Get("/stats", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), adminController.GetAdminStats)
}
