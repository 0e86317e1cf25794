package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/scoreking-api/internal/domain"
	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

// Create persiste una copia del usuario.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
		if u.IsAdmin && existing.IsAdmin {
			return domain.ErrAdminAlreadyExists
		}
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email }), nil
}

// GetByEmailOrUsername prioriza el email; entre usernames repetidos gana el más antiguo.
func (r *UserRepo) GetByEmailOrUsername(ctx context.Context, emailOrUsername string) (*entity.User, error) {
	if u, _ := r.GetByEmail(ctx, normalize(emailOrUsername)); u != nil {
		return u, nil
	}
	return r.find(func(u *entity.User) bool { return u.Username == emailOrUsername }), nil
}

func (r *UserRepo) GetByEmailAndCedula(_ context.Context, email, cedula string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email && u.Cedula == cedula }), nil
}

func (r *UserRepo) ExistsWithRole(_ context.Context, roleID string) (bool, error) {
	return r.find(func(u *entity.User) bool { return u.RoleID == roleID }) != nil, nil
}

func (r *UserRepo) UpdateUsername(_ context.Context, id, username string, at time.Time) error {
	return r.update(id, at, func(u *entity.User) { u.Username = username })
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, passwordHash string, at time.Time) error {
	return r.update(id, at, func(u *entity.User) { u.PasswordHash = passwordHash })
}

func (r *UserRepo) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	return r.update(id, at, func(u *entity.User) { u.Status = status })
}

func (r *UserRepo) update(id string, at time.Time, apply func(*entity.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	apply(u)
	u.UpdatedAt = at
	return nil
}

func (r *UserRepo) find(match func(*entity.User) bool) *entity.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var found *entity.User
	for _, u := range r.s.users {
		if !match(u) {
			continue
		}
		if found == nil || u.CreatedAt.Before(found.CreatedAt) {
			found = u
		}
	}
	if found == nil {
		return nil
	}
	return cloneUser(found)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
