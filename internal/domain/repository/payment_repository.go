package repository

import (
	"context"
	"time"

	"github.com/jhoicas/scoreking-api/internal/domain/entity"
)

// PaymentRepository puerto de persistencia de los pagos.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	// MarkSucceeded actualiza el estado por (provider, externalID). Devuelve false si no existe.
	MarkSucceeded(ctx context.Context, provider, externalID string, at time.Time) (bool, error)
}
