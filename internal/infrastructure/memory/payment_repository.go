package memory

import (
	"context"
	"time"

	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos en memoria.
type PaymentRepo struct {
	s *Store
}

func paymentKey(provider, externalID string) string { return provider + "/" + externalID }

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := paymentKey(p.Provider, p.ExternalID)
	if _, ok := r.s.payments[key]; ok {
		return nil
	}
	cp := *p
	r.s.payments[key] = &cp
	return nil
}

func (r *PaymentRepo) MarkSucceeded(_ context.Context, provider, externalID string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[paymentKey(provider, externalID)]
	if !ok {
		return false, nil
	}
	p.Status = entity.PaymentStatusSucceeded
	p.UpdatedAt = at
	return true, nil
}

// Get devuelve una copia del pago o nil.
func (r *PaymentRepo) Get(provider, externalID string) *entity.Payment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.payments[paymentKey(provider, externalID)]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}
