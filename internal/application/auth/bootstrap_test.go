package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/scoreking-api/internal/application/auth"
	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/infrastructure/memory"
	"github.com/jhoicas/scoreking-api/pkg/logger"
)

func TestEnsureRoles_Idempotente(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, auth.EnsureRoles(ctx, store.Roles(), logger.Nop()))
	admin, err := store.Roles().GetByName(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, admin)

	require.NoError(t, auth.EnsureRoles(ctx, store.Roles(), logger.Nop()))
	again, err := store.Roles().GetByName(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	user, err := store.Roles().GetByName(ctx, entity.RoleUser)
	require.NoError(t, err)
	assert.NotNil(t, user)
}
