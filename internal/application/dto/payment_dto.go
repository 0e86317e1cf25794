package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CreatePaymentIntentRequest entrada de Stripe. Amount en la unidad mínima de la moneda.
type CreatePaymentIntentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"omitempty,len=3,alpha"`
	UserID   string          `json:"userId" validate:"omitempty,max=64"`
}

// PaymentIntentResponse client secret para Stripe Elements.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// WebhookAck confirmación de recepción del webhook.
type WebhookAck struct {
	Received bool `json:"received"`
}

// CreatePayPalOrderRequest entrada de PayPal.
type CreatePayPalOrderRequest struct {
	UserID string `json:"userId" validate:"required,max=64"`
}

// PayPalLinkDTO enlace de aprobación/captura.
type PayPalLinkDTO struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

// PayPalOrderResponse orden creada.
type PayPalOrderResponse struct {
	ID    string          `json:"id"`
	Links []PayPalLinkDTO `json:"links"`
}

// PayPalCaptureResponse resultado de la captura.
type PayPalCaptureResponse struct {
	Message string          `json:"message"`
	Capture json.RawMessage `json:"capture"`
}
