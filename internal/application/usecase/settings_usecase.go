package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/scoreking-api/internal/domain"
	"github.com/jhoicas/scoreking-api/internal/domain/password"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

// SettingsUseCase ajustes de cuenta del usuario autenticado.
type SettingsUseCase struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewSettingsUseCase construye el caso de uso con el puerto de persistencia.
func NewSettingsUseCase(repo repository.UserRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, now: time.Now}
}

// UpdateUsername cambia el nombre de usuario.
func (uc *SettingsUseCase) UpdateUsername(ctx context.Context, userID, username string) error {
	username = strings.TrimSpace(username)
	if len([]rune(username)) < 3 {
		return fmt.Errorf("%w: el nombre de usuario debe tener al menos 3 caracteres", domain.ErrInvalidInput)
	}
	return uc.repo.UpdateUsername(ctx, userID, username, uc.now())
}

// ChangePassword exige la contraseña actual y aplica la política a la nueva.
// Las cuentas creadas con Google no tienen contraseña actual y reciben ErrInvalidCredentials.
func (uc *SettingsUseCase) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !password.Matches(user.PasswordHash, current) {
		return domain.ErrInvalidCredentials
	}
	if err := password.ValidateNewPassword(next, user.FirstName, user.LastName); err != nil {
		return err
	}
	hash, err := password.Hash(next)
	if err != nil {
		return err
	}
	return uc.repo.UpdatePassword(ctx, userID, hash, uc.now())
}
