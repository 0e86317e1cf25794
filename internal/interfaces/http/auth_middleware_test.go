package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/scoreking-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/scoreking-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "scoreking-test"
)

func testIssuerFor(t *testing.T) *pkgjwt.Issuer {
	t.Helper()
	iss, err := pkgjwt.NewIssuer(testJWTSecret, testIssuer, time.Hour)
	require.NoError(t, err)
	return iss
}

// buildProtectedApp app mínima con AuthMiddleware delante de un handler que devuelve el user id.
func buildProtectedApp(t *testing.T) *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testIssuerFor(t), "token"), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": apphttp.GetUserID(c)})
	})
	return app
}

func tokenFor(t *testing.T, iss *pkgjwt.Issuer, userID string) string {
	t.Helper()
	tok, err := iss.Generate(userID)
	require.NoError(t, err)
	return tok
}

func doProtected(t *testing.T, app *fiber.App, cookie, authHeader string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	app := buildProtectedApp(t)
	resp, body := doProtected(t, app, tokenFor(t, testIssuerFor(t), testUserID), "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, body["id"])
}

func TestAuthMiddleware_Bearer(t *testing.T) {
	app := buildProtectedApp(t)
	resp, body := doProtected(t, app, "", "Bearer "+tokenFor(t, testIssuerFor(t), testUserID))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, body["id"])
}

func TestAuthMiddleware_CookiePrevaleceSobreHeader(t *testing.T) {
	app := buildProtectedApp(t)
	iss := testIssuerFor(t)
	resp, body := doProtected(t, app, tokenFor(t, iss, "desde-cookie"), "Bearer "+tokenFor(t, iss, "desde-header"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "desde-cookie", body["id"])
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	expired, err := testIssuerFor(t).WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).Generate(testUserID)
	require.NoError(t, err)
	other, err := pkgjwt.NewIssuer("otro-secret", testIssuer, time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		cookie string
		header string
		code   string
	}{
		{"sin token", "", "", "MISSING_TOKEN"},
		{"formato de header", "", "Token abc", "INVALID_TOKEN"},
		{"token basura", "", "Bearer abc.def.ghi", "INVALID_TOKEN"},
		{"expirado", expired, "", "INVALID_TOKEN"},
		{"otra firma", tokenFor(t, other, testUserID), "", "INVALID_TOKEN"},
	}
	app := buildProtectedApp(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doProtected(t, app, tc.cookie, tc.header)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	l := apphttp.NewIPRateLimiter(0.001, 2)
	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"), "cada IP tiene su propio bucket")
}
