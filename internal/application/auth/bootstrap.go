package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
	"github.com/jhoicas/scoreking-api/pkg/logger"
)

// EnsureRoles garantiza que existan los roles por defecto. Se puede ejecutar en cada arranque.
func EnsureRoles(ctx context.Context, roles repository.RoleRepository, log *logger.Logger) error {
	for _, r := range entity.DefaultRoles() {
		role := r
		created, err := roles.EnsureRole(ctx, &role)
		if err != nil {
			return fmt.Errorf("asegurar rol %s: %w", r.Name, err)
		}
		if created {
			log.Info().Str("role", role.Name).Msg("rol creado")
		}
	}
	return nil
}
