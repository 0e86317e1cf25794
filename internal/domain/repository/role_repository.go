package repository

import (
	"context"

	"github.com/jhoicas/scoreking-api/internal/domain/entity"
)

// RoleRepository puerto de persistencia para Role.
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	// EnsureRole crea el rol si no existe y devuelve true si lo creó. Idempotente.
	EnsureRole(ctx context.Context, role *entity.Role) (bool, error)
}
