package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/scoreking-api/internal/application/auth"
	"github.com/jhoicas/scoreking-api/internal/application/dto"
	"github.com/jhoicas/scoreking-api/internal/infrastructure/memory"
	"github.com/jhoicas/scoreking-api/pkg/jwt"
	"github.com/jhoicas/scoreking-api/pkg/logger"
)

func TestLogin_RememberMeSigueValidoDespuesDelTTLPorDefecto(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, auth.EnsureRoles(ctx, store.Roles(), logger.Nop()))
	base, err := jwt.NewIssuer("test-secret", "scoreking-test", 24*time.Hour)
	require.NoError(t, err)
	issuer := base.WithRememberTTL(7 * 24 * time.Hour)
	uc := auth.NewAuthUseCase(store.Users(), store.Roles(), issuer)

	_, err = uc.Register(ctx, aliceRequest())
	require.NoError(t, err)

	remembered, err := uc.Login(ctx, dto.LoginRequest{EmailOrUsername: "alice", Password: "Str0ng!Pass", RememberMe: true})
	require.NoError(t, err)
	assert.True(t, remembered.Persistent)
	session, err := uc.Login(ctx, dto.LoginRequest{EmailOrUsername: "alice", Password: "Str0ng!Pass"})
	require.NoError(t, err)
	assert.False(t, session.Persistent)

	twoDaysLater := issuer.WithClock(func() time.Time { return time.Now().Add(48 * time.Hour) })
	claims, err := twoDaysLater.Parse(remembered.Token)
	require.NoError(t, err)
	assert.Equal(t, remembered.User.ID, claims.UserID)

	_, err = twoDaysLater.Parse(session.Token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
