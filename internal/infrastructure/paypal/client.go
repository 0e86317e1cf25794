// Package paypal cliente mínimo de la API REST Orders v2 de PayPal.
// Usa net/http de la librería estándar; no hay SDK oficial de Go.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/scoreking-api/internal/application/ports"
	"github.com/jhoicas/scoreking-api/pkg/config"
)

var _ ports.PayPalGateway = (*Client)(nil)

const maxBody = 256 * 1024

// Client obtiene un access token OAuth (client credentials) y lo reutiliza hasta su expiración.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	now          func() time.Time

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewClient construye el cliente. baseURL: https://api-m.sandbox.paypal.com o https://api-m.paypal.com.
func NewClient(cfg config.PayPalConfig) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: 20 * time.Second})
}

// NewClientWithHTTP permite inyectar el *http.Client (tests con httptest).
func NewClientWithHTTP(cfg config.PayPalConfig, hc *http.Client) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   hc,
		now:          time.Now,
	}
}

// ── Estructuras del protocolo Orders v2 ──────────────────────────────────────

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type purchaseUnit struct {
	Amount   amount `json:"amount"`
	CustomID string `json:"custom_id,omitempty"`
}

type applicationContext struct {
	ReturnURL string `json:"return_url"`
	CancelURL string `json:"cancel_url"`
}

type createOrderRequest struct {
	Intent             string             `json:"intent"`
	PurchaseUnits      []purchaseUnit     `json:"purchase_units"`
	ApplicationContext applicationContext `json:"application_context"`
}

type orderResponse struct {
	ID            string             `json:"id"`
	Status        string             `json:"status"`
	Links         []ports.PayPalLink `json:"links"`
	PurchaseUnits []capturedUnit     `json:"purchase_units"`
}

type capturedUnit struct {
	CustomID string `json:"custom_id"`
	Payments struct {
		Captures []struct {
			CustomID string `json:"custom_id"`
		} `json:"captures"`
	} `json:"payments"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type apiError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Desc    string `json:"error_description"`
}

// ── Implementación del puerto ────────────────────────────────────────────────

// CreateOrder crea una orden CAPTURE con un solo purchase unit.
func (c *Client) CreateOrder(ctx context.Context, req ports.PayPalOrderRequest) (*ports.PayPalOrder, error) {
	payload := createOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			Amount:   amount{CurrencyCode: req.Currency, Value: req.Amount.StringFixed(2)},
			CustomID: req.CustomID,
		}},
		ApplicationContext: applicationContext{ReturnURL: req.ReturnURL, CancelURL: req.CancelURL},
	}
	var out orderResponse
	if err := c.do(ctx, http.MethodPost, "/v2/checkout/orders", payload, &out, nil); err != nil {
		return nil, err
	}
	return &ports.PayPalOrder{ID: out.ID, Links: out.Links}, nil
}

// CaptureOrder captura una orden aprobada por el comprador.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*ports.PayPalCapture, error) {
	var out orderResponse
	var raw json.RawMessage
	path := "/v2/checkout/orders/" + url.PathEscape(orderID) + "/capture"
	if err := c.do(ctx, http.MethodPost, path, struct{}{}, &out, &raw); err != nil {
		return nil, err
	}
	return &ports.PayPalCapture{
		OrderID:  out.ID,
		Status:   out.Status,
		CustomID: out.customID(),
		Raw:      raw,
	}, nil
}

// customID en la respuesta de captura viene en el purchase unit o en la captura.
func (o orderResponse) customID() string {
	for _, pu := range o.PurchaseUnits {
		if pu.CustomID != "" {
			return pu.CustomID
		}
		for _, cp := range pu.Payments.Captures {
			if cp.CustomID != "" {
				return cp.CustomID
			}
		}
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, raw *json.RawMessage) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("paypal: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("paypal: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	rawBody, status, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return statusError(status, rawBody)
	}
	if raw != nil {
		*raw = append(json.RawMessage(nil), rawBody...)
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("paypal: deserializar respuesta: %w", err)
	}
	return nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && c.now().Before(c.expiresAt) {
		return c.accessToken, nil
	}
	if c.clientID == "" || c.clientSecret == "" {
		return "", fmt.Errorf("paypal: PAYPAL_CLIENT_ID / PAYPAL_CLIENT_SECRET no configurados")
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("paypal: crear request de token: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rawBody, status, err := c.send(ctx, req)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", statusError(status, rawBody)
	}
	var tr tokenResponse
	if err := json.Unmarshal(rawBody, &tr); err != nil || tr.AccessToken == "" {
		return "", fmt.Errorf("paypal: respuesta de token inválida")
	}
	c.accessToken = tr.AccessToken
	// margen de un minuto antes de la expiración real
	c.expiresAt = c.now().Add(time.Duration(tr.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}

func (c *Client) send(ctx context.Context, req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("paypal: timeout o cancelación: %w", ctx.Err())
		}
		return nil, 0, fmt.Errorf("paypal: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()
	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, 0, fmt.Errorf("paypal: leer respuesta: %w", err)
	}
	return rawBody, resp.StatusCode, nil
}

func statusError(status int, body []byte) error {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil {
		switch {
		case e.Message != "":
			return fmt.Errorf("paypal: HTTP %d (%s): %s", status, e.Name, e.Message)
		case e.Desc != "":
			return fmt.Errorf("paypal: HTTP %d (%s): %s", status, e.Error, e.Desc)
		}
	}
	return fmt.Errorf("paypal: HTTP %d: %s", status, string(body))
}
