package utils

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"lotuslight/config"

	"github.com/go-resty/resty/v2"
)

// Payment gateway errors
var (
	ErrInvalidAmount      = errors.New("payment amount must be greater than zero")
	ErrGatewayRejected    = errors.New("payment gateway rejected the request")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// PaymentIntent is the slice of Stripe's payment intent object we care about
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// PaymentGateway is a thin client for Stripe's PaymentIntents API. It holds
// no local state; any rejection or transport failure is surfaced to the
// caller and creates no records.
type PaymentGateway struct {
	client   *resty.Client
	currency string
}

func NewPaymentGateway() *PaymentGateway {
	client := resty.New().
		SetBaseURL(config.AppConfig.StripeApiURL).
		SetAuthToken(config.AppConfig.StripeApiSecretKey).
		SetHeader("Content-Type", "application/x-www-form-urlencoded")

	return &PaymentGateway{
		client:   client,
		currency: config.AppConfig.PaymentCurrency,
	}
}

// MinorUnits converts a major-unit price to the processor's minor-unit
// convention (cents). Rounded exactly once so every caller agrees on the
// amount for the same price.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreatePaymentIntent asks Stripe for a client authorization token for the
// given major-unit price.
func (g *PaymentGateway) CreatePaymentIntent(price float64) (*PaymentIntent, error) {
	if price <= 0 {
		return nil, ErrInvalidAmount
	}

	var intent PaymentIntent
	var apiErr stripeError
	resp, err := g.client.R().
		SetFormData(map[string]string{
			"amount":                 strconv.FormatInt(MinorUnits(price), 10),
			"currency":               g.currency,
			"payment_method_types[]": "card",
		}).
		SetResult(&intent).
		SetError(&apiErr).
		Post("payment_intents")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if resp.IsError() {
		if resp.StatusCode() >= 500 {
			return nil, fmt.Errorf("%w: %s", ErrGatewayUnavailable, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrGatewayRejected, apiErr.Error.Message)
	}
	return &intent, nil
}

// RetrievePaymentIntent fetches the current state of a payment intent
func (g *PaymentGateway) RetrievePaymentIntent(ref string) (*PaymentIntent, error) {
	var intent PaymentIntent
	var apiErr stripeError
	resp, err := g.client.R().
		SetResult(&intent).
		SetError(&apiErr).
		Get("payment_intents/" + url.PathEscape(ref))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if resp.IsError() {
		if resp.StatusCode() >= 500 {
			return nil, fmt.Errorf("%w: %s", ErrGatewayUnavailable, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrGatewayRejected, apiErr.Error.Message)
	}
	return &intent, nil
}

// PaymentSucceeded reports whether Stripe has confirmed the transaction.
// Used by the settlement pipeline before it writes any local records.
func (g *PaymentGateway) PaymentSucceeded(ref string) (bool, error) {
	intent, err := g.RetrievePaymentIntent(ref)
	if err != nil {
		return false, err
	}
	return intent.Status == "succeeded", nil
}
