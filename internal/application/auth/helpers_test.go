package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/scoreking-api/internal/application/auth"
	"github.com/jhoicas/scoreking-api/internal/application/dto"
	"github.com/jhoicas/scoreking-api/internal/application/ports"
	"github.com/jhoicas/scoreking-api/internal/infrastructure/memory"
	"github.com/jhoicas/scoreking-api/pkg/jwt"
	"github.com/jhoicas/scoreking-api/pkg/logger"
)

type env struct {
	store  *memory.Store
	issuer *jwt.Issuer
	auth   *auth.AuthUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, auth.EnsureRoles(context.Background(), store.Roles(), logger.Nop()))
	issuer, err := jwt.NewIssuer("test-secret", "scoreking-test", time.Hour)
	require.NoError(t, err)
	return &env{store: store, issuer: issuer, auth: auth.NewAuthUseCase(store.Users(), store.Roles(), issuer)}
}

func aliceRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username:        "alice",
		Email:           "alice@x.com",
		Password:        "Str0ng!Pass",
		ConfirmPassword: "Str0ng!Pass",
		FirstName:       "Alice",
		LastName:        "Smith",
		Age:             30,
		Country:         "Colombia",
		State:           "Antioquia",
		City:            "Medellín",
		BirthDate:       "1994-05-17",
		Cedula:          "1020304050",
	}
}

func (e *env) register(t *testing.T, in dto.RegisterRequest) *dto.AuthResult {
	t.Helper()
	res, err := e.auth.Register(context.Background(), in)
	require.NoError(t, err)
	return res
}

// fakeMailer guarda los códigos enviados; err simula un SMTP que falla después de
// haber recibido el mensaje (el código queda registrado igual).
type fakeMailer struct {
	mu    sync.Mutex
	codes []string
	err   error
}

var _ ports.Mailer = (*fakeMailer)(nil)

func (m *fakeMailer) SendPasswordResetCode(_ context.Context, _, code string, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes = append(m.codes, code)
	return m.err
}

func (m *fakeMailer) last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.codes) == 0 {
		return ""
	}
	return m.codes[len(m.codes)-1]
}

// clock reloj manual para los tests de expiración.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
