package http_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/jhoicas/scoreking-api/internal/application/payment"
	"github.com/jhoicas/scoreking-api/internal/application/ports"
	"github.com/jhoicas/scoreking-api/internal/application/scraping"
	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/infrastructure/memory"
	"github.com/jhoicas/scoreking-api/internal/infrastructure/stripe"
	apphttp "github.com/jhoicas/scoreking-api/internal/interfaces/http"
	"github.com/jhoicas/scoreking-api/pkg/config"
	"github.com/jhoicas/scoreking-api/pkg/logger"
)

const webhookSecret = "whsec_router_test"

type stubRunner struct{ res *ports.ScriptResult }

func (r stubRunner) Run(context.Context, string) (*ports.ScriptResult, error) { return r.res, nil }

func newPaymentApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: "u-1", Email: "alice@x.com", Status: entity.UserStatusInactive, CreatedAt: time.Now(),
	}))
	uc := payment.NewPaymentUseCase(store.Users(), store.Payments(),
		stripe.NewGateway(config.StripeConfig{WebhookSecret: webhookSecret}), nil, payment.PayPalURLs{}, logger.Nop())
	app := apphttp.NewApp(apphttp.RouterDeps{
		PaymentUC: uc,
		Tokens:    testIssuerFor(t),
		Log:       logger.Nop(),
	})
	return app, store
}

func postRaw(t *testing.T, app *fiber.App, path string, body []byte, headers map[string]string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestStripeWebhook_ActivaCuenta(t *testing.T) {
	app, store := newPaymentApp(t)
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded",` +
			`"data":{"object":{"id":"pi_1","object":"payment_intent","metadata":{"userId":"u-1"}}}}`),
		Secret: webhookSecret,
	})

	resp, raw := postRaw(t, app, "/api/payments/stripe/webhook", sp.Payload, map[string]string{"Stripe-Signature": sp.Header})
	require.Equal(t, http.StatusOK, resp.StatusCode, raw)
	assert.JSONEq(t, `{"received":true}`, raw)

	u, err := store.Users().GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusActive, u.Status)
}

func TestStripeWebhook_FirmaInvalida(t *testing.T) {
	app, _ := newPaymentApp(t)
	resp, raw := postRaw(t, app, "/api/payments/stripe/webhook", []byte(`{}`), map[string]string{"Stripe-Signature": "t=1,v1=00"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, raw, "INVALID_SIGNATURE")
}

func TestCreatePaymentIntent_ImporteInvalido(t *testing.T) {
	app, _ := newPaymentApp(t)
	resp, raw := postRaw(t, app, "/api/payments/create-payment-intent", []byte(`{"amount":-10}`), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, raw, "VALIDATION")
}

func TestScraping_Rutas(t *testing.T) {
	newApp := func(res *ports.ScriptResult, cfg scraping.Config) *fiber.App {
		return apphttp.NewApp(apphttp.RouterDeps{
			ScrapingUC: scraping.NewScrapingUseCase(stubRunner{res: res}, cfg),
			Tokens:     testIssuerFor(t),
			Log:        logger.Nop(),
		})
	}
	paths := scraping.Config{MatchesPath: "/s/matches.py", LeaguesPath: "/s/leagues.py"}

	resp, raw := postRaw(t, newApp(&ports.ScriptResult{Stdout: `{"leagues":[]}`}, paths), "/api/scraping/run", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Scraping ejecutado correctamente","data":{"leagues":[]}}`, raw)

	resp, raw = postRaw(t, newApp(&ports.ScriptResult{ExitCode: 1, Stderr: "Traceback"}, paths), "/api/scraping/run-ligas", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, raw, "SCRAPER_FAILED")

	resp, raw = postRaw(t, newApp(&ports.ScriptResult{}, scraping.Config{}), "/api/scraping/run", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, raw, "SCRAPER_NOT_CONFIGURED")
}
