package userController

import (
	"lotuslight/database"
	"lotuslight/middleware"
	"lotuslight/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers returns every user (admin dashboard)
func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.Database.Db.Where("is_deleted = false").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
}

// GetUserRole returns the role for an email. Unknown users are students;
// the default belongs to the user model, this just mirrors it for clients
// that ask before the first login upsert has happened.
func GetUserRole(c *fiber.Ctx) error {
	email := c.Params("email")

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = false", email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Role fetched successfully!", fiber.Map{
			"role": models.RoleStudent,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role fetched successfully!", fiber.Map{
		"role": user.Role,
	})
}

// GetInstructors returns all instructors
func GetInstructors(c *fiber.Ctx) error {
	var instructors []models.User
	if err := database.Database.Db.Where("role = ? AND is_deleted = false", models.RoleInstructor).
		Find(&instructors).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch instructors!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructors fetched successfully!", instructors)
}

// GetPopularInstructors returns the six instructors with the most students
func GetPopularInstructors(c *fiber.Ctx) error {
	var instructors []models.User
	if err := database.Database.Db.
		Where("role = ? AND is_deleted = false", models.RoleInstructor).
		Order("students_count DESC").
		Limit(6).
		Find(&instructors).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch instructors!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Popular instructors fetched successfully!", instructors)
}

// UpdateUserRole changes a user's role (admin only)
func UpdateUserRole(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	reqData, ok := c.Locals("validatedRole").(*struct {
		Role string `json:"role" validate:"required,oneof=student instructor admin"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Role = reqData.Role
	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", user)
}
