package selectionController

import (
	"lotuslight/database"
	"lotuslight/middleware"
	"lotuslight/models"

	"github.com/gofiber/fiber/v2"
)

// AddSelection puts an approved class in the user's cart. The price is
// snapshotted here; later price changes on the class do not affect a
// pending selection.
func AddSelection(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedSelection").(*struct {
		ClassID uint `json:"classId" validate:"required,gt=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var class models.ClassOffering
	if err := db.Where("id = ? AND status = ? AND is_deleted = false",
		reqData.ClassID, models.ClassStatusApproved).First(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found or not approved!", nil)
	}

	// Already in the cart
	var existing models.SelectionEntry
	if err := db.Where("user_email = ? AND class_id = ?", email, reqData.ClassID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Class already selected!", nil)
	}

	// Already enrolled
	var enrolled models.EnrollmentRecord
	if err := db.Where("user_email = ? AND class_id = ?", email, reqData.ClassID).First(&enrolled).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this class!", nil)
	}

	selection := models.SelectionEntry{
		UserEmail:      email,
		ClassID:        class.ID,
		ClassName:      class.Name,
		Image:          class.Image,
		InstructorName: class.InstructorName,
		Price:          class.Price,
	}

	if err := db.Create(&selection).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to select class!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Class selected successfully!", selection)
}

// GetSelections returns the logged-in user's cart
func GetSelections(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var selections []models.SelectionEntry
	if err := database.Database.Db.Where("user_email = ?", email).Find(&selections).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch selections!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Selections fetched successfully!", selections)
}

// GetSelectionItem returns one cart entry (payment page detail view)
func GetSelectionItem(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	selectionID := c.Locals("selectionID").(int)

	var selection models.SelectionEntry
	if err := database.Database.Db.Where("id = ? AND user_email = ?", selectionID, email).First(&selection).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Selection not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Selection fetched successfully!", selection)
}

// DeleteSelection removes a cart entry (user cancelling before payment)
func DeleteSelection(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	selectionID := c.Locals("selectionID").(int)

	db := database.Database.Db

	var selection models.SelectionEntry
	if err := db.Where("id = ? AND user_email = ?", selectionID, email).First(&selection).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Selection not found!", nil)
	}

	if err := db.Delete(&selection).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete selection!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Selection deleted successfully!", nil)
}
