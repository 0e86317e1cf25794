package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// GetByName obtiene un rol por nombre.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, `SELECT id, name, description FROM roles WHERE name = $1`, name).
		Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by name: %w", err)
	}
	return &role, nil
}

// EnsureRole inserta el rol si no existe (ON CONFLICT sobre el nombre) y rellena role.ID.
func (r *RoleRepo) EnsureRole(ctx context.Context, role *entity.Role) (bool, error) {
	if role.ID == "" {
		role.ID = uuid.New().String()
	}
	tag, err := r.q.Exec(ctx,
		`INSERT INTO roles (id, name, description) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`,
		role.ID, role.Name, role.Description,
	)
	if err != nil {
		return false, fmt.Errorf("ensure role: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	existing, err := r.GetByName(ctx, role.Name)
	if err != nil {
		return false, err
	}
	if existing != nil {
		*role = *existing
	}
	return false, nil
}
