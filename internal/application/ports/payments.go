package ports

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// StripeIntent resultado de crear un PaymentIntent.
type StripeIntent struct {
	ID           string
	ClientSecret string
}

// StripeEvent evento de webhook ya verificado.
type StripeEvent struct {
	Type            string
	PaymentIntentID string
	UserID          string // metadata.userId
}

// StripeGateway puerto hacia Stripe.
type StripeGateway interface {
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency, userID string) (*StripeIntent, error)
	// ParseWebhook verifica la firma y decodifica el evento. Firma inválida -> domain.ErrInvalidSignature.
	ParseWebhook(payload []byte, signature string) (*StripeEvent, error)
}

// PayPalLink enlace HATEOAS devuelto por PayPal.
type PayPalLink struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

// PayPalOrderRequest datos para crear una orden.
type PayPalOrderRequest struct {
	Amount    decimal.Decimal
	Currency  string
	CustomID  string
	ReturnURL string
	CancelURL string
}

// PayPalOrder orden creada.
type PayPalOrder struct {
	ID    string
	Links []PayPalLink
}

// PayPalCapture resultado de capturar una orden.
type PayPalCapture struct {
	OrderID  string
	Status   string
	CustomID string
	Raw      json.RawMessage
}

// PayPalGateway puerto hacia PayPal Orders v2.
type PayPalGateway interface {
	CreateOrder(ctx context.Context, req PayPalOrderRequest) (*PayPalOrder, error)
	CaptureOrder(ctx context.Context, orderID string) (*PayPalCapture, error)
}
