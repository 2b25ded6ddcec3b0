package enrollmentController

import (
	"lotuslight/database"
	"lotuslight/middleware"
	"lotuslight/models"

	"github.com/gofiber/fiber/v2"
)

// GetEnrollments returns the logged-in user's enrolled classes, newest first
func GetEnrollments(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.EnrollmentRecord
	if err := database.Database.Db.
		Where("user_email = ?", email).
		Order("enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}
