package auth

import (
	"context"

	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

// ResetTxRunner ejecuta fn en una unidad atómica: consumir el código y guardar la nueva
// contraseña se confirman juntos o no se confirma ninguno.
type ResetTxRunner interface {
	RunReset(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		tokenRepo repository.PasswordResetTokenRepository,
	) error) error
}
