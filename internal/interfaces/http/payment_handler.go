package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scoreking-api/internal/application/dto"
	"github.com/jhoicas/scoreking-api/internal/application/payment"
)

// PaymentHandler cobros con Stripe y PayPal.
type PaymentHandler struct {
	uc   *payment.PaymentUseCase
	val  *Validator
	errs *ErrorMapper
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payment.PaymentUseCase, val *Validator, errs *ErrorMapper) *PaymentHandler {
	return &PaymentHandler{uc: uc, val: val, errs: errs}
}

// CreatePaymentIntent godoc
// @Summary      Crear PaymentIntent de Stripe
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentIntentRequest  false  "amount, currency, userId"
// @Success      200   {object}  dto.PaymentIntentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/payments/create-payment-intent [post]
func (h *PaymentHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	var in dto.CreatePaymentIntentRequest
	if len(c.Body()) > 0 {
		if err := h.val.bind(c, &in); err != nil {
			return h.errs.Respond(c, err)
		}
	}
	out, err := h.uc.CreateStripeIntent(c.UserContext(), in)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// StripeWebhook godoc
// @Summary      Webhook de Stripe
// @Description  Requiere el cuerpo sin modificar y la cabecera Stripe-Signature.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.WebhookAck
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/payments/stripe/webhook [post]
func (h *PaymentHandler) StripeWebhook(c *fiber.Ctx) error {
	// c.Body() apunta al buffer de fasthttp: se copia antes de verificar la firma.
	payload := append([]byte(nil), c.Body()...)
	if err := h.uc.HandleStripeWebhook(c.UserContext(), payload, c.Get("Stripe-Signature")); err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(dto.WebhookAck{Received: true})
}

// CreatePayPalOrder godoc
// @Summary      Crear orden de PayPal
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePayPalOrderRequest  true  "userId"
// @Success      200   {object}  dto.PayPalOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/paypal/create-order [post]
func (h *PaymentHandler) CreatePayPalOrder(c *fiber.Ctx) error {
	var in dto.CreatePayPalOrderRequest
	if err := h.val.bind(c, &in); err != nil {
		return h.errs.Respond(c, err)
	}
	out, err := h.uc.CreatePayPalOrder(c.UserContext(), in.UserID)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// CapturePayPalOrder godoc
// @Summary      Capturar orden de PayPal
// @Description  PayPal redirige aquí con ?token=<orderId> tras la aprobación.
// @Tags         payments
// @Produce      json
// @Param        token  query  string  true  "id de la orden"
// @Success      200    {object}  dto.PayPalCaptureResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      502    {object}  dto.ErrorResponse
// @Router       /api/paypal/capture-order [get]
func (h *PaymentHandler) CapturePayPalOrder(c *fiber.Ctx) error {
	out, err := h.uc.CapturePayPalOrder(c.UserContext(), c.Query("token"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}
