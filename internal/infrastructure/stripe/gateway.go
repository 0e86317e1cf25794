// Package stripe adaptador de ports.StripeGateway sobre stripe-go.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/jhoicas/scoreking-api/internal/application/ports"
	"github.com/jhoicas/scoreking-api/internal/domain"
	"github.com/jhoicas/scoreking-api/pkg/config"
)

var _ ports.StripeGateway = (*Gateway)(nil)

// Gateway crea PaymentIntents y verifica webhooks firmados.
type Gateway struct {
	intents       paymentintent.Client
	webhookSecret string
}

// NewGateway construye el cliente con la clave secreta (sin estado global de stripe.Key).
func NewGateway(cfg config.StripeConfig) *Gateway {
	return &Gateway{
		intents:       paymentintent.Client{B: stripeapi.GetBackend(stripeapi.APIBackend), Key: cfg.SecretKey},
		webhookSecret: cfg.WebhookSecret,
	}
}

// CreatePaymentIntent amount va en la unidad mínima que espera Stripe para la moneda.
func (g *Gateway) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency, userID string) (*ports.StripeIntent, error) {
	if g.intents.Key == "" {
		return nil, fmt.Errorf("stripe: STRIPE_SECRET_KEY no configurado")
	}
	params := &stripeapi.PaymentIntentParams{
		Amount:   stripeapi.Int64(amount.IntPart()),
		Currency: stripeapi.String(currency),
		AutomaticPaymentMethods: &stripeapi.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripeapi.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("userId", userID)

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: crear payment intent: %w", err)
	}
	return &ports.StripeIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// ParseWebhook verifica la cabecera Stripe-Signature. Para eventos payment_intent.* extrae
// el id y metadata.userId.
func (g *Gateway) ParseWebhook(payload []byte, signature string) (*ports.StripeEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	out := &ports.StripeEvent{Type: string(event.Type)}
	if !strings.HasPrefix(out.Type, "payment_intent.") || event.Data == nil || len(event.Data.Raw) == 0 {
		return out, nil
	}
	var pi stripeapi.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("stripe: decodificar payment intent: %w", err)
	}
	out.PaymentIntentID = pi.ID
	out.UserID = pi.Metadata["userId"]
	return out, nil
}
