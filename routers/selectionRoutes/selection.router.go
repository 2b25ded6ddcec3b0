package selectionRoutes

import (
	selectionController "lotuslight/controllers/selection"
	"lotuslight/middleware"
	selectionValidator "lotuslight/validators/selection"

	"github.com/gofiber/fiber/v2"
)

func SetupSelectionRoutes(app *fiber.App) {
	selectionGroup := app.Group("/selections")

	selectionGroup.Post("/", middleware.JWTMiddleware, selectionValidator.AddSelection(), selectionController.AddSelection)
	selectionGroup.Get("/", middleware.JWTMiddleware, selectionController.GetSelections)
	selectionGroup.Get("/:id", middleware.JWTMiddleware, selectionValidator.SelectionID(), selectionController.GetSelectionItem)
	selectionGroup.Delete("/:id", middleware.JWTMiddleware, selectionValidator.SelectionID(), selectionController.DeleteSelection)
}
