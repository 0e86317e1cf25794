package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/scoreking-api/internal/application/auth"
	"github.com/jhoicas/scoreking-api/internal/application/dto"
	"github.com/jhoicas/scoreking-api/internal/domain"
	"github.com/jhoicas/scoreking-api/internal/domain/password"
	"github.com/jhoicas/scoreking-api/internal/infrastructure/memory"
	"github.com/jhoicas/scoreking-api/pkg/logger"
)

const newPass = "N3w!Secret99"

var t0 = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func newReset(e *env, m *fakeMailer, clk *clock) *auth.PasswordResetUseCase {
	uc := auth.NewPasswordResetUseCase(
		e.store.Users(), e.store.ResetTokens(), memory.NewTxRunner(e.store), m, time.Second, logger.Nop(),
	)
	return uc.WithClock(clk.Now)
}

func TestRequestReset_EnviaCodigoDeSeisDigitos(t *testing.T) {
	e := newEnv(t)
	e.register(t, aliceRequest())
	m := &fakeMailer{}
	uc := newReset(e, m, &clock{now: t0})

	require.NoError(t, uc.RequestReset(context.Background(), "alice@x.com", "1020304050"))
	code := m.last()
	require.Len(t, code, 6)
	assert.Regexp(t, `^[1-9][0-9]{5}$`, code)
	assert.Equal(t, 1, e.store.ResetTokens().Len())
}

func TestRequestReset_CedulaNoCoincide(t *testing.T) {
	e := newEnv(t)
	e.register(t, aliceRequest())
	uc := newReset(e, &fakeMailer{}, &clock{now: t0})

	err := uc.RequestReset(context.Background(), "alice@x.com", "999")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRequestReset_FalloDeCorreo(t *testing.T) {
	e := newEnv(t)
	e.register(t, aliceRequest())
	m := &fakeMailer{err: errors.New("smtp caído")}
	uc := newReset(e, m, &clock{now: t0})
	ctx := context.Background()

	err := uc.RequestReset(ctx, "alice@x.com", "1020304050")
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)

	// un correo que llegue tarde no debe traer un código utilizable
	code := m.last()
	require.NotEmpty(t, code)
	assert.ErrorIs(t, uc.VerifyToken(ctx, "alice@x.com", code), domain.ErrInvalidOrExpiredToken)
	assert.ErrorIs(t, uc.ResetPassword(ctx, "alice@x.com", code, newPass), domain.ErrInvalidOrExpiredToken)
}

func TestResetPassword_UnSoloUso(t *testing.T) {
	e := newEnv(t)
	e.register(t, aliceRequest())
	m := &fakeMailer{}
	uc := newReset(e, m, &clock{now: t0})
	ctx := context.Background()

	require.NoError(t, uc.RequestReset(ctx, "alice@x.com", "1020304050"))
	code := m.last()

	require.NoError(t, uc.VerifyToken(ctx, "alice@x.com", code))
	require.NoError(t, uc.ResetPassword(ctx, "alice@x.com", code, newPass))

	assert.ErrorIs(t, uc.ResetPassword(ctx, "alice@x.com", code, "Otr0!Secret99"), domain.ErrInvalidOrExpiredToken)
	assert.ErrorIs(t, uc.VerifyToken(ctx, "alice@x.com", code), domain.ErrInvalidOrExpiredToken)

	_, err := e.auth.Login(ctx, dto.LoginRequest{EmailOrUsername: "alice", Password: newPass})
	assert.NoError(t, err)
	_, err = e.auth.Login(ctx, dto.LoginRequest{EmailOrUsername: "alice", Password: "Str0ng!Pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestResetPassword_Expiracion(t *testing.T) {
	cases := []struct {
		name  string
		after time.Duration
		ok    bool
	}{
		{"4m59s vigente", 4*time.Minute + 59*time.Second, true},
		{"5m exactos expirado", 5 * time.Minute, false},
		{"5m01s expirado", 5*time.Minute + time.Second, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			e.register(t, aliceRequest())
			m := &fakeMailer{}
			clk := &clock{now: t0}
			uc := newReset(e, m, clk)
			ctx := context.Background()

			require.NoError(t, uc.RequestReset(ctx, "alice@x.com", "1020304050"))
			clk.Set(t0.Add(tc.after))

			err := uc.ResetPassword(ctx, "alice@x.com", m.last(), newPass)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
			}
		})
	}
}

func TestResetPassword_CodigosAnterioresSiguenVigentes(t *testing.T) {
	e := newEnv(t)
	e.register(t, aliceRequest())
	m := &fakeMailer{}
	uc := newReset(e, m, &clock{now: t0})
	ctx := context.Background()

	require.NoError(t, uc.RequestReset(ctx, "alice@x.com", "1020304050"))
	first := m.last()
	require.NoError(t, uc.RequestReset(ctx, "alice@x.com", "1020304050"))

	assert.NoError(t, uc.VerifyToken(ctx, "alice@x.com", first))
}

func TestResetPassword_ContraseñaDebilNoConsumeCodigo(t *testing.T) {
	e := newEnv(t)
	e.register(t, aliceRequest())
	m := &fakeMailer{}
	uc := newReset(e, m, &clock{now: t0})
	ctx := context.Background()

	require.NoError(t, uc.RequestReset(ctx, "alice@x.com", "1020304050"))
	code := m.last()

	err := uc.ResetPassword(ctx, "alice@x.com", code, "smith-Pass1!")
	var v *password.PolicyViolation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, password.RuleName, v.Rule)

	assert.NoError(t, uc.VerifyToken(ctx, "alice@x.com", code))
}

func TestResetPassword_CodigoErroneoYUsuarioInexistente(t *testing.T) {
	e := newEnv(t)
	e.register(t, aliceRequest())
	uc := newReset(e, &fakeMailer{}, &clock{now: t0})
	ctx := context.Background()

	assert.ErrorIs(t, uc.VerifyToken(ctx, "alice@x.com", "123456"), domain.ErrInvalidOrExpiredToken)
	assert.ErrorIs(t, uc.VerifyToken(ctx, "nadie@x.com", "123456"), domain.ErrUserNotFound)
}

func TestResetPassword_ConcurrenteSoloUnoGana(t *testing.T) {
	e := newEnv(t)
	e.register(t, aliceRequest())
	m := &fakeMailer{}
	uc := newReset(e, m, &clock{now: t0})
	ctx := context.Background()

	require.NoError(t, uc.RequestReset(ctx, "alice@x.com", "1020304050"))
	code := m.last()

	const n = 6
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = uc.ResetPassword(ctx, "alice@x.com", code, newPass)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
	}
	assert.Equal(t, 1, ok)
}
