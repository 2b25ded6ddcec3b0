package paymentValidator

import (
	"lotuslight/middleware"
	"lotuslight/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateIntent validates the payment authorization request
func CreateIntent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Price float64 `json:"price" validate:"required,gt=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := utils.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, utils.FormatValidationErrors(err))
		}

		c.Locals("validatedIntent", reqData)
		return c.Next()
	}
}

// Settle validates the settlement request
func Settle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SelectionID    uint   `json:"selectionId" validate:"required,gt=0"`
			TransactionRef string `json:"transactionRef" validate:"required"`
			UserEmail      string `json:"userEmail" validate:"required,email"`
			ClassID        uint   `json:"classId" validate:"required,gt=0"`
			GatewayResponse any   `json:"gatewayResponse"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := utils.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, utils.FormatValidationErrors(err))
		}

		c.Locals("validatedSettle", reqData)
		return c.Next()
	}
}
