package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proveedores de pago.
const (
	PaymentProviderStripe = "stripe"
	PaymentProviderPayPal = "paypal"
)

// Estados de Payment.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
)

// Payment registro de un intento de pago en un proveedor externo.
type Payment struct {
	ID         string
	UserID     string // puede ser "anonymous"
	Provider   string
	ExternalID string // PaymentIntent ID u Order ID
	Amount     decimal.Decimal
	Currency   string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
