package classValidator

import (
	"strconv"
	"strings"

	"lotuslight/middleware"
	"lotuslight/utils"

	"github.com/gofiber/fiber/v2"
)

// classID parses and validates the :id route param
func classID(c *fiber.Ctx) (int, bool) {
	idStr := strings.TrimSpace(c.Params("id"))
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// AddClass validates a new class submission
func AddClass() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name  string  `json:"name" validate:"required"`
			Image string  `json:"image"`
			Seats int     `json:"seats" validate:"gt=0"`
			Price float64 `json:"price" validate:"gt=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := utils.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, utils.FormatValidationErrors(err))
		}

		c.Locals("validatedClass", reqData)
		return c.Next()
	}
}

// UpdateClass validates an instructor's class update
func UpdateClass() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := classID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class ID!", nil)
		}

		reqData := new(struct {
			Name  string  `json:"name"`
			Image string  `json:"image"`
			Seats int     `json:"seats"`
			Price float64 `json:"price"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.Seats < 0 {
			errors["seats"] = "Seats cannot be negative!"
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("classID", id)
		c.Locals("validatedClassUpdate", reqData)
		return c.Next()
	}
}

// UpdateClassStatus validates the admin approve/deny request
func UpdateClassStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := classID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class ID!", nil)
		}

		reqData := new(struct {
			Status   string `json:"status" validate:"required,oneof=approved denied"`
			Feedback string `json:"feedback"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := utils.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, utils.FormatValidationErrors(err))
		}

		c.Locals("classID", id)
		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}

// ClassID validates the :id route param for detail and delete routes
func ClassID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := classID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class ID!", nil)
		}
		c.Locals("classID", id)
		return c.Next()
	}
}
