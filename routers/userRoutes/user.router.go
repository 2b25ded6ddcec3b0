package userRoutes

import (
	userController "lotuslight/controllers/user"
	"lotuslight/middleware"
	"lotuslight/models"
	userValidator "lotuslight/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users")

	userGroup.Get("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), userController.GetAllUsers)
	userGroup.Get("/role/:email", userController.GetUserRole)
	userGroup.Patch("/:id/role", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), userValidator.UpdateRole(), userController.UpdateUserRole)

	instructorGroup := app.Group("/instructors")
	instructorGroup.Get("/", userController.GetInstructors)
	instructorGroup.Get("/popular", userController.GetPopularInstructors)
}
