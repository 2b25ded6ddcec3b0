package authController

import (
	"errors"

	"lotuslight/database"
	"lotuslight/middleware"
	"lotuslight/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Login upserts the user record and issues a token. Identity verification
// happens upstream; by the time this runs the email is trusted. A first
// login creates the user with the default student role.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email" validate:"required,email"`
		Name     string `json:"name" validate:"required"`
		PhotoURL string `json:"photoUrl"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	err := db.Where("email = ? AND is_deleted = false", reqData.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.NewUser(reqData.Email, reqData.Name, reqData.PhotoURL)
		if err := db.Create(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store user!", nil)
		}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to look up user!", nil)
	} else {
		user.Name = reqData.Name
		user.PhotoURL = reqData.PhotoURL
		if err := db.Save(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
		}
	}

	token, err := middleware.GenerateJWT(user.Email, user.Name, user.Role)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged in successfully!", fiber.Map{
		"token": token,
		"user":  user,
	})
}
