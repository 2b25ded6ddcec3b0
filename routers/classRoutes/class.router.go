package classRoutes

import (
	classController "lotuslight/controllers/class"
	"lotuslight/middleware"
	"lotuslight/models"
	classValidator "lotuslight/validators/class"

	"github.com/gofiber/fiber/v2"
)

func SetupClassRoutes(app *fiber.App) {
	classGroup := app.Group("/classes")

	// Public listings
	classGroup.Get("/approved", classController.GetApprovedClasses)
	classGroup.Get("/popular", classController.GetPopularClasses)

	// Admin review queue
	classGroup.Get("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), classController.GetAllClasses)

	// Instructor surface
	classGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), classValidator.AddClass(), classController.AddClass)
	classGroup.Get("/instructor/:email", classController.GetInstructorClasses)
	classGroup.Patch("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), classValidator.UpdateClass(), classController.UpdateClass)
	classGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), classValidator.ClassID(), classController.DeleteClass)

	// Admin approval
	classGroup.Patch("/:id/status", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), classValidator.UpdateClassStatus(), classController.UpdateClassStatus)

	// Detail view (keep last so it doesn't shadow the named routes)
	classGroup.Get("/:id", classValidator.ClassID(), classController.GetClassDetails)
}
