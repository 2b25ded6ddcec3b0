package paymentController

import (
	"encoding/json"
	"errors"
	"log"

	"lotuslight/config"
	"lotuslight/database"
	"lotuslight/middleware"
	"lotuslight/models"
	"lotuslight/services"
	"lotuslight/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateIntent asks the payment gateway for a client authorization token
// for the given price. Nothing is written locally; records only appear at
// settlement time.
func CreateIntent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedIntent").(*struct {
		Price float64 `json:"price" validate:"required,gt=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	gateway := utils.NewPaymentGateway()
	intent, err := gateway.CreatePaymentIntent(reqData.Price)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidAmount) || errors.Is(err, utils.ErrGatewayRejected) {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Payment authorization was rejected!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment gateway unavailable. Please try again.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment intent created!", fiber.Map{
		"clientSecret": intent.ClientSecret,
	})
}

// Settle finalizes a paid selection: payment record, enrollment record,
// counter bumps, selection cleanup. Safe to retry with the same selection
// and transaction reference after a timeout or crash.
func Settle(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedSettle").(*struct {
		SelectionID    uint   `json:"selectionId" validate:"required,gt=0"`
		TransactionRef string `json:"transactionRef" validate:"required"`
		UserEmail      string `json:"userEmail" validate:"required,email"`
		ClassID        uint   `json:"classId" validate:"required,gt=0"`
		GatewayResponse any   `json:"gatewayResponse"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.UserEmail != email {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only settle your own selections!", nil)
	}

	var verifier services.PaymentVerifier
	if config.AppConfig.PaymentVerify {
		verifier = utils.NewPaymentGateway()
	}

	settler := services.NewSettler(database.Database.Db, verifier)
	settler.Currency = config.AppConfig.PaymentCurrency

	// Keep the raw gateway payload on the ledger row, if the client sent one.
	var gatewayResponse []byte
	if reqData.GatewayResponse != nil {
		if jsonBytes, marshalErr := json.Marshal(reqData.GatewayResponse); marshalErr == nil {
			gatewayResponse = jsonBytes
		}
	}

	enrollment, err := settler.Settle(services.SettleRequest{
		SelectionID:     reqData.SelectionID,
		TransactionRef:  reqData.TransactionRef,
		UserEmail:       reqData.UserEmail,
		ClassID:         reqData.ClassID,
		GatewayResponse: gatewayResponse,
	})
	if err != nil {
		return settleErrorResponse(c, err)
	}

	// Confirmation mail is best effort; the settlement is already durable.
	var user models.User
	if lookupErr := database.Database.Db.Where("email = ? AND is_deleted = false", email).First(&user).Error; lookupErr == nil {
		if mailErr := utils.SendEnrollmentEmail(user.Email, user.Name, enrollment.ClassName); mailErr != nil {
			log.Printf("[SETTLEMENT] Failed to send enrollment email to %s: %v", user.Email, mailErr)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment settled successfully!", enrollment)
}

// settleErrorResponse maps settlement errors to HTTP statuses. Partial and
// store failures tell the client a retry with identical inputs is safe.
func settleErrorResponse(c *fiber.Ctx, err error) error {
	var partial *services.PartialError
	switch {
	case errors.Is(err, services.ErrSelectionNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Selection not found!", nil)
	case errors.Is(err, services.ErrClassNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	case errors.Is(err, services.ErrPaymentNotConfirmed), errors.Is(err, utils.ErrGatewayRejected):
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Payment was not confirmed by the gateway!", nil)
	case errors.Is(err, utils.ErrGatewayUnavailable):
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment gateway unavailable. Please try again.", nil)
	case errors.As(err, &partial):
		log.Printf("[SETTLEMENT] Partial settlement failure at %s step: %v", partial.Step, partial.Err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Settlement incomplete. Retry with the same transaction reference.", fiber.Map{
			"failedStep": partial.Step,
			"retrySafe":  true,
		})
	case errors.Is(err, services.ErrStoreUnavailable):
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Store unavailable. Retry with the same transaction reference.", fiber.Map{
			"retrySafe": true,
		})
	default:
		log.Printf("[SETTLEMENT] Unexpected settlement error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to settle enrollment!", nil)
	}
}

// GetPayments returns the logged-in user's payment history, newest first
func GetPayments(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var payments []models.PaymentRecord
	if err := database.Database.Db.
		Where("user_email = ?", email).
		Order("settled_at DESC").
		Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", payments)
}
