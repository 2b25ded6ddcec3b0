package adminController

import (
	"time"

	"lotuslight/database"
	"lotuslight/middleware"
	"lotuslight/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// GetAdminStats aggregates the platform totals for the admin dashboard.
// Revenue comes from the payment ledger; student/class totals from the
// instructor counters the settlement pipeline maintains.
func GetAdminStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalAmount float64
	if err := db.Model(&models.PaymentRecord{}).
		Select("COALESCE(SUM(price), 0)").
		Scan(&totalAmount).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to aggregate payments!", nil)
	}

	monthStart := now.With(time.Now()).BeginningOfMonth()
	var monthAmount float64
	if err := db.Model(&models.PaymentRecord{}).
		Select("COALESCE(SUM(price), 0)").
		Where("settled_at >= ?", monthStart).
		Scan(&monthAmount).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to aggregate payments!", nil)
	}

	var totals struct {
		TotalStudents int
		TotalClasses  int
	}
	if err := db.Model(&models.User{}).
		Select("COALESCE(SUM(students_count), 0) AS total_students, COALESCE(SUM(classes_count), 0) AS total_classes").
		Where("role = ? AND is_deleted = false", models.RoleInstructor).
		Scan(&totals).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to aggregate instructors!", nil)
	}

	var totalInstructors int64
	if err := db.Model(&models.User{}).
		Where("role = ? AND is_deleted = false", models.RoleInstructor).
		Count(&totalInstructors).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to count instructors!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"totalAmount":      totalAmount,
		"monthAmount":      monthAmount,
		"totalStudents":    totals.TotalStudents,
		"totalClasses":     totals.TotalClasses,
		"totalInstructors": totalInstructors,
	})
}
