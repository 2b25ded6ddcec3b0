package selectionValidator

import (
	"strconv"
	"strings"

	"lotuslight/middleware"
	"lotuslight/utils"

	"github.com/gofiber/fiber/v2"
)

// AddSelection validates a new cart entry
func AddSelection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ClassID uint `json:"classId" validate:"required,gt=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := utils.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, utils.FormatValidationErrors(err))
		}

		c.Locals("validatedSelection", reqData)
		return c.Next()
	}
}

// SelectionID validates the :id route param
func SelectionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid selection ID!", nil)
		}
		c.Locals("selectionID", id)
		return c.Next()
	}
}
