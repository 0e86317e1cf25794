package repository

import (
	"context"
	"time"

	"github.com/jhoicas/scoreking-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) cuando no hay coincidencia.
type UserRepository interface {
	// Create falla con domain.ErrEmailAlreadyExists o domain.ErrAdminAlreadyExists.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByEmailOrUsername prioriza la coincidencia por email.
	GetByEmailOrUsername(ctx context.Context, emailOrUsername string) (*entity.User, error)
	GetByEmailAndCedula(ctx context.Context, email, cedula string) (*entity.User, error)
	ExistsWithRole(ctx context.Context, roleID string) (bool, error)
	// Los Update* devuelven domain.ErrUserNotFound si el id no existe.
	UpdateUsername(ctx context.Context, id, username string, at time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
}
