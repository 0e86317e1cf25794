package repository

import (
	"context"
	"time"

	"github.com/jhoicas/scoreking-api/internal/domain/entity"
)

// PasswordResetTokenRepository puerto de persistencia de los códigos de recuperación.
type PasswordResetTokenRepository interface {
	Create(ctx context.Context, token *entity.PasswordResetToken) error
	// FindValid devuelve el token vigente en now para (userID, token) o (nil, nil).
	FindValid(ctx context.Context, userID, token string, now time.Time) (*entity.PasswordResetToken, error)
	// Consume elimina atómicamente el token vigente. Devuelve false si no había ninguno;
	// de dos llamadas concurrentes sobre el mismo token solo una obtiene true.
	Consume(ctx context.Context, userID, token string, now time.Time) (bool, error)
}
