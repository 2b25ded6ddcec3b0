package userValidator

import (
	"strconv"
	"strings"

	"lotuslight/middleware"
	"lotuslight/utils"

	"github.com/gofiber/fiber/v2"
)

// UpdateRole validates the admin role change request
func UpdateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := strings.TrimSpace(c.Params("id"))
		userID, err := strconv.Atoi(userIDStr)
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
		}

		reqData := new(struct {
			Role string `json:"role" validate:"required,oneof=student instructor admin"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := utils.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, utils.FormatValidationErrors(err))
		}

		c.Locals("userID", userID)
		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}
