package paymentRoutes

import (
	enrollmentController "lotuslight/controllers/enrollment"
	paymentController "lotuslight/controllers/payment"
	"lotuslight/middleware"
	paymentValidator "lotuslight/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payments")

	paymentGroup.Post("/create-intent", middleware.JWTMiddleware, paymentValidator.CreateIntent(), paymentController.CreateIntent)
	paymentGroup.Post("/settle", middleware.JWTMiddleware, paymentValidator.Settle(), paymentController.Settle)
	paymentGroup.Get("/", middleware.JWTMiddleware, paymentController.GetPayments)

	enrollmentGroup := app.Group("/enrollments")
	enrollmentGroup.Get("/", middleware.JWTMiddleware, enrollmentController.GetEnrollments)
}
