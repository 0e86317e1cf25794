package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/scoreking-api/internal/application/dto"
	"github.com/jhoicas/scoreking-api/internal/application/ports"
	"github.com/jhoicas/scoreking-api/internal/domain"
	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
	"github.com/jhoicas/scoreking-api/pkg/logger"
)

// Valores por defecto de la suscripción.
var (
	DefaultStripeAmount = decimal.NewFromInt(250000)
	PayPalAmount        = decimal.RequireFromString("1.00")
)

const (
	DefaultStripeCurrency = "cop"
	PayPalCurrency        = "USD"
	anonymousUser         = "anonymous"

	// EventPaymentIntentSucceeded único evento de Stripe que activa cuentas.
	EventPaymentIntentSucceeded = "payment_intent.succeeded"

	gatewayTimeout = 15 * time.Second
)

// PayPalURLs URLs de retorno tras aprobar o cancelar en PayPal.
type PayPalURLs struct {
	ReturnURL string
	CancelURL string
}

// PaymentUseCase cobra la suscripción con Stripe o PayPal y activa la cuenta al confirmarse el pago.
type PaymentUseCase struct {
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	stripe      ports.StripeGateway
	paypal      ports.PayPalGateway
	urls        PayPalURLs
	log         *logger.Logger
	now         func() time.Time
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	stripe ports.StripeGateway,
	paypal ports.PayPalGateway,
	urls PayPalURLs,
	log *logger.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		stripe:      stripe,
		paypal:      paypal,
		urls:        urls,
		log:         log,
		now:         time.Now,
	}
}

// CreateStripeIntent crea un PaymentIntent de tarjeta y devuelve su client secret.
func (uc *PaymentUseCase) CreateStripeIntent(ctx context.Context, in dto.CreatePaymentIntentRequest) (*dto.PaymentIntentResponse, error) {
	amount := in.Amount
	if amount.IsZero() {
		amount = DefaultStripeAmount
	}
	if amount.IsNegative() || !amount.Equal(amount.Truncate(0)) {
		return nil, fmt.Errorf("%w: amount debe ser un entero positivo en la unidad mínima de la moneda", domain.ErrInvalidInput)
	}
	currency := in.Currency
	if currency == "" {
		currency = DefaultStripeCurrency
	}
	userID := in.UserID
	if userID == "" {
		userID = anonymousUser
	}

	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()
	intent, err := uc.stripe.CreatePaymentIntent(gctx, amount, currency, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: stripe: %v", domain.ErrUpstream, err)
	}

	uc.record(ctx, entity.PaymentProviderStripe, intent.ID, userID, amount, currency)
	return &dto.PaymentIntentResponse{ClientSecret: intent.ClientSecret}, nil
}

// HandleStripeWebhook verifica la firma y procesa el evento. Los fallos al activar la cuenta
// se registran pero no se devuelven para que Stripe no reintente.
func (uc *PaymentUseCase) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := uc.stripe.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}
	if event.Type != EventPaymentIntentSucceeded {
		uc.log.Debug().Str("type", event.Type).Msg("evento de Stripe ignorado")
		return nil
	}
	uc.log.Info().Str("user_id", event.UserID).Str("payment_intent", event.PaymentIntentID).Msg("pago Stripe confirmado")

	uc.markSucceeded(ctx, entity.PaymentProviderStripe, event.PaymentIntentID)
	if err := uc.activate(ctx, event.UserID); err != nil {
		uc.log.Error().Err(err).Str("user_id", event.UserID).Msg("activar usuario tras pago Stripe")
	}
	return nil
}

// CreatePayPalOrder crea una orden de importe fijo ligada al usuario mediante custom_id.
func (uc *PaymentUseCase) CreatePayPalOrder(ctx context.Context, userID string) (*dto.PayPalOrderResponse, error) {
	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()
	order, err := uc.paypal.CreateOrder(gctx, ports.PayPalOrderRequest{
		Amount:    PayPalAmount,
		Currency:  PayPalCurrency,
		CustomID:  userID,
		ReturnURL: uc.urls.ReturnURL,
		CancelURL: uc.urls.CancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: paypal: %v", domain.ErrUpstream, err)
	}

	uc.record(ctx, entity.PaymentProviderPayPal, order.ID, userID, PayPalAmount, PayPalCurrency)

	out := &dto.PayPalOrderResponse{ID: order.ID, Links: make([]dto.PayPalLinkDTO, 0, len(order.Links))}
	for _, l := range order.Links {
		out.Links = append(out.Links, dto.PayPalLinkDTO{Href: l.Href, Rel: l.Rel, Method: l.Method})
	}
	return out, nil
}

// CapturePayPalOrder captura la orden aprobada y activa al usuario de custom_id.
func (uc *PaymentUseCase) CapturePayPalOrder(ctx context.Context, orderID string) (*dto.PayPalCaptureResponse, error) {
	if orderID == "" {
		return nil, fmt.Errorf("%w: token de la orden requerido", domain.ErrInvalidInput)
	}
	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()
	capture, err := uc.paypal.CaptureOrder(gctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: paypal: %v", domain.ErrUpstream, err)
	}

	uc.markSucceeded(ctx, entity.PaymentProviderPayPal, orderID)
	if err := uc.activate(ctx, capture.CustomID); err != nil {
		return nil, err
	}
	return &dto.PayPalCaptureResponse{Message: "Pago exitoso, cuenta activada", Capture: capture.Raw}, nil
}

func (uc *PaymentUseCase) activate(ctx context.Context, userID string) error {
	if userID == "" || userID == anonymousUser {
		return domain.ErrUserNotFound
	}
	if err := uc.userRepo.UpdateStatus(ctx, userID, entity.UserStatusActive, uc.now()); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", userID).Msg("usuario activado")
	return nil
}

// record guarda el intento de pago. Un fallo aquí no invalida el cobro ya creado en el proveedor.
func (uc *PaymentUseCase) record(ctx context.Context, provider, externalID, userID string, amount decimal.Decimal, currency string) {
	now := uc.now()
	err := uc.paymentRepo.Create(ctx, &entity.Payment{
		ID:         uuid.New().String(),
		UserID:     userID,
		Provider:   provider,
		ExternalID: externalID,
		Amount:     amount,
		Currency:   currency,
		Status:     entity.PaymentStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("provider", provider).Str("external_id", externalID).Msg("registrar pago")
	}
}

func (uc *PaymentUseCase) markSucceeded(ctx context.Context, provider, externalID string) {
	ok, err := uc.paymentRepo.MarkSucceeded(ctx, provider, externalID, uc.now())
	switch {
	case err != nil:
		uc.log.Warn().Err(err).Str("provider", provider).Str("external_id", externalID).Msg("actualizar pago")
	case !ok:
		uc.log.Warn().Str("provider", provider).Str("external_id", externalID).Msg("pago no registrado previamente")
	}
}
