package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo roles en memoria, indexados por nombre.
type RoleRepo struct {
	s *Store
}

func (r *RoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if role, ok := r.s.roles[name]; ok {
		cp := *role
		return &cp, nil
	}
	return nil, nil
}

func (r *RoleRepo) EnsureRole(_ context.Context, role *entity.Role) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.roles[role.Name]; ok {
		*role = *existing
		return false, nil
	}
	if role.ID == "" {
		role.ID = uuid.New().String()
	}
	cp := *role
	r.s.roles[role.Name] = &cp
	return true, nil
}
