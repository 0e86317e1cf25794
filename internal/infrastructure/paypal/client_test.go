package paypal_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/scoreking-api/internal/application/ports"
	"github.com/jhoicas/scoreking-api/internal/infrastructure/paypal"
	"github.com/jhoicas/scoreking-api/pkg/config"
)

type fakePayPal struct {
	tokenCalls int32
	lastOrder  map[string]any
}

func (f *fakePayPal) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.tokenCalls, 1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "cid" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"invalid_client","error_description":"Client Authentication failed"}`)
			return
		}
		_, _ = io.WriteString(w, `{"access_token":"A21","expires_in":32400}`)
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer A21", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&f.lastOrder))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"ORDER-1","status":"CREATED","links":[{"href":"https://paypal.test/approve","rel":"approve","method":"GET"}]}`)
	})
	mux.HandleFunc("/v2/checkout/orders/ORDER-1/capture", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"ORDER-1","status":"COMPLETED","purchase_units":[{"payments":{"captures":[{"id":"CAP-1","custom_id":"u-1"}]}}]}`)
	})
	mux.HandleFunc("/v2/checkout/orders/BAD/capture", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"name":"UNPROCESSABLE_ENTITY","message":"The requested action could not be performed"}`)
	})
	return mux
}

func newClient(t *testing.T, secret string) (*paypal.Client, *fakePayPal) {
	t.Helper()
	fake := &fakePayPal{}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	c := paypal.NewClientWithHTTP(config.PayPalConfig{ClientID: "cid", ClientSecret: secret, BaseURL: srv.URL + "/"}, srv.Client())
	return c, fake
}

func TestCreateOrderYCapture(t *testing.T) {
	c, fake := newClient(t, "secret")
	ctx := context.Background()

	order, err := c.CreateOrder(ctx, ports.PayPalOrderRequest{
		Amount: decimal.RequireFromString("1"), Currency: "USD", CustomID: "u-1",
		ReturnURL: "https://app.test/ok", CancelURL: "https://app.test/cancel",
	})
	require.NoError(t, err)
	assert.Equal(t, "ORDER-1", order.ID)
	require.Len(t, order.Links, 1)
	assert.Equal(t, "approve", order.Links[0].Rel)

	assert.Equal(t, "CAPTURE", fake.lastOrder["intent"])
	units := fake.lastOrder["purchase_units"].([]any)
	unit := units[0].(map[string]any)
	assert.Equal(t, "u-1", unit["custom_id"])
	assert.Equal(t, map[string]any{"currency_code": "USD", "value": "1.00"}, unit["amount"])

	capture, err := c.CaptureOrder(ctx, "ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", capture.Status)
	assert.Equal(t, "u-1", capture.CustomID)
	assert.Contains(t, string(capture.Raw), "CAP-1")

	// el token se reutiliza entre llamadas
	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.tokenCalls))
}

func TestCaptureOrder_ErrorDeAPI(t *testing.T) {
	c, _ := newClient(t, "secret")
	_, err := c.CaptureOrder(context.Background(), "BAD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "UNPROCESSABLE_ENTITY")
}

func TestToken_CredencialesInvalidas(t *testing.T) {
	c, _ := newClient(t, "wrong")
	_, err := c.CreateOrder(context.Background(), ports.PayPalOrderRequest{Amount: decimal.NewFromInt(1), Currency: "USD"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_client")
}

func TestToken_SinCredenciales(t *testing.T) {
	c, _ := newClient(t, "")
	_, err := c.CaptureOrder(context.Background(), "ORDER-1")
	assert.ErrorContains(t, err, "PAYPAL_CLIENT_SECRET")
}
