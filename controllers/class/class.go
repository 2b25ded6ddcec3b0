package classController

import (
	"lotuslight/database"
	"lotuslight/middleware"
	"lotuslight/models"
	"lotuslight/services"

	"github.com/gofiber/fiber/v2"
)

// AddClass creates a new class offering for the logged-in instructor. New
// classes start pending until an admin approves them.
func AddClass(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var instructor models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = false", email).First(&instructor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedClass").(*struct {
		Name  string  `json:"name" validate:"required"`
		Image string  `json:"image"`
		Seats int     `json:"seats" validate:"gt=0"`
		Price float64 `json:"price" validate:"gt=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	class := models.ClassOffering{
		Name:            reqData.Name,
		Image:           reqData.Image,
		InstructorName:  instructor.Name,
		InstructorEmail: instructor.Email,
		Seats:           reqData.Seats,
		Price:           reqData.Price,
		Status:          models.ClassStatusPending,
	}

	db := database.Database.Db
	if err := db.Create(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create class!", nil)
	}

	// Counter mutation goes through the atomic increment contract, never a
	// read-modify-write on the user row.
	if err := services.IncrementUserCounter(db, instructor.Email, services.ColumnClassesCount, 1); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update class count!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Class created successfully!", class)
}

// GetAllClasses returns every class, newest first (admin review queue)
func GetAllClasses(c *fiber.Ctx) error {
	var classes []models.ClassOffering
	if err := database.Database.Db.Where("is_deleted = false").
		Order("created_at DESC").
		Find(&classes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classes!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Classes fetched successfully!", classes)
}

// GetApprovedClasses returns the publicly listed classes
func GetApprovedClasses(c *fiber.Ctx) error {
	var classes []models.ClassOffering
	if err := database.Database.Db.
		Where("status = ? AND is_deleted = false", models.ClassStatusApproved).
		Find(&classes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classes!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Approved classes fetched successfully!", classes)
}

// GetPopularClasses returns the six approved classes with the most enrollments
func GetPopularClasses(c *fiber.Ctx) error {
	var classes []models.ClassOffering
	if err := database.Database.Db.
		Where("status = ? AND is_deleted = false", models.ClassStatusApproved).
		Order("enrolled_count DESC").
		Limit(6).
		Find(&classes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classes!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Popular classes fetched successfully!", classes)
}

// GetClassDetails returns a single class by id
func GetClassDetails(c *fiber.Ctx) error {
	classID := c.Locals("classID").(int)

	var class models.ClassOffering
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", classID).First(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class fetched successfully!", class)
}

// GetInstructorClasses returns an instructor's classes, optionally filtered
// to approved ones with ?status=approved
func GetInstructorClasses(c *fiber.Ctx) error {
	email := c.Params("email")

	query := database.Database.Db.Where("instructor_email = ? AND is_deleted = false", email)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var classes []models.ClassOffering
	if err := query.Order("created_at DESC").Find(&classes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classes!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Classes fetched successfully!", classes)
}

// UpdateClass updates a class's own fields (owner only)
func UpdateClass(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	classID := c.Locals("classID").(int)

	reqData, ok := c.Locals("validatedClassUpdate").(*struct {
		Name  string  `json:"name"`
		Image string  `json:"image"`
		Seats int     `json:"seats"`
		Price float64 `json:"price"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var class models.ClassOffering
	if err := db.Where("id = ? AND is_deleted = false", classID).First(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	if class.InstructorEmail != email {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only update your own classes!", nil)
	}

	if reqData.Name != "" {
		class.Name = reqData.Name
	}
	if reqData.Image != "" {
		class.Image = reqData.Image
	}
	if reqData.Seats > 0 {
		class.Seats = reqData.Seats
	}
	if reqData.Price > 0 {
		class.Price = reqData.Price
	}

	if err := db.Save(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update class!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class updated successfully!", class)
}

// UpdateClassStatus approves or denies a class with optional feedback (admin only)
func UpdateClassStatus(c *fiber.Ctx) error {
	classID := c.Locals("classID").(int)

	reqData, ok := c.Locals("validatedStatus").(*struct {
		Status   string `json:"status" validate:"required,oneof=approved denied"`
		Feedback string `json:"feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var class models.ClassOffering
	if err := db.Where("id = ? AND is_deleted = false", classID).First(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	class.Status = reqData.Status
	if reqData.Feedback != "" {
		class.Feedback = reqData.Feedback
	}

	if err := db.Save(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update class status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class status updated successfully!", class)
}

// DeleteClass soft-deletes an instructor's class
func DeleteClass(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	classID := c.Locals("classID").(int)

	db := database.Database.Db

	var class models.ClassOffering
	if err := db.Where("id = ? AND is_deleted = false", classID).First(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	if class.InstructorEmail != email {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own classes!", nil)
	}

	class.IsDeleted = true
	if err := db.Save(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete class!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class deleted successfully!", nil)
}
