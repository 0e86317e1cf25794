package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo registro de pagos sobre PostgreSQL. amount es NUMERIC (codec shopspring/decimal).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste el pago; si ya existe (reintento del cliente) no hace nada.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (id, user_id, provider, external_id, amount, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (provider, external_id) DO NOTHING`,
		p.ID, p.UserID, p.Provider, p.ExternalID, p.Amount, p.Currency, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// MarkSucceeded marca el pago como cobrado.
func (r *PaymentRepo) MarkSucceeded(ctx context.Context, provider, externalID string, at time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE payments SET status = $3, updated_at = $4 WHERE provider = $1 AND external_id = $2`,
		provider, externalID, entity.PaymentStatusSucceeded, at,
	)
	if err != nil {
		return false, fmt.Errorf("update payment: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
