package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/scoreking-api/internal/application/usecase"
	"github.com/jhoicas/scoreking-api/internal/domain"
	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/password"
	"github.com/jhoicas/scoreking-api/internal/infrastructure/memory"
)

func seedUser(t *testing.T, store *memory.Store, plain string) *entity.User {
	t.Helper()
	u := &entity.User{
		ID:        "u-1",
		RoleID:    "r-1",
		Username:  "alice",
		Email:     "alice@x.com",
		FirstName: "Alice",
		LastName:  "Smith",
		Status:    entity.UserStatusActive,
		CreatedAt: time.Now(),
	}
	if plain != "" {
		h, err := password.Hash(plain)
		require.NoError(t, err)
		u.PasswordHash = h
	}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func TestUpdateUsername(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "Str0ng!Pass")
	uc := usecase.NewSettingsUseCase(store.Users())
	ctx := context.Background()

	require.NoError(t, uc.UpdateUsername(ctx, "u-1", "  alicia  "))
	u, err := store.Users().GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "alicia", u.Username)

	assert.ErrorIs(t, uc.UpdateUsername(ctx, "u-1", "ab"), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateUsername(ctx, "otro", "valido"), domain.ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "Str0ng!Pass")
	uc := usecase.NewSettingsUseCase(store.Users())
	ctx := context.Background()

	t.Run("actual incorrecta", func(t *testing.T) {
		assert.ErrorIs(t, uc.ChangePassword(ctx, "u-1", "nope", "N3w!Secret99"), domain.ErrInvalidCredentials)
	})
	t.Run("nueva débil", func(t *testing.T) {
		assert.ErrorIs(t, uc.ChangePassword(ctx, "u-1", "Str0ng!Pass", "corta"), domain.ErrWeakPassword)
	})
	t.Run("usuario inexistente", func(t *testing.T) {
		assert.ErrorIs(t, uc.ChangePassword(ctx, "otro", "Str0ng!Pass", "N3w!Secret99"), domain.ErrUserNotFound)
	})
	t.Run("ok", func(t *testing.T) {
		require.NoError(t, uc.ChangePassword(ctx, "u-1", "Str0ng!Pass", "N3w!Secret99"))
		u, err := store.Users().GetByID(ctx, "u-1")
		require.NoError(t, err)
		assert.True(t, password.Matches(u.PasswordHash, "N3w!Secret99"))
		assert.False(t, password.Matches(u.PasswordHash, "Str0ng!Pass"))
	})
}

func TestChangePassword_CuentaFederada(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "")
	uc := usecase.NewSettingsUseCase(store.Users())

	err := uc.ChangePassword(context.Background(), "u-1", "", "N3w!Secret99")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
