package memory

import (
	"context"
	"time"

	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

var _ repository.PasswordResetTokenRepository = (*PasswordResetTokenRepo)(nil)

// PasswordResetTokenRepo códigos de recuperación en memoria.
type PasswordResetTokenRepo struct {
	s *Store
}

func (r *PasswordResetTokenRepo) Create(_ context.Context, t *entity.PasswordResetToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *t
	r.s.tokens[t.ID] = &cp
	return nil
}

func (r *PasswordResetTokenRepo) FindValid(_ context.Context, userID, token string, now time.Time) (*entity.PasswordResetToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if t := r.s.findValidLocked(userID, token, now); t != nil {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

// Consume borra el código bajo el lock de escritura: de dos llamadas solo una lo encuentra.
func (r *PasswordResetTokenRepo) Consume(_ context.Context, userID, token string, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := r.s.findValidLocked(userID, token, now)
	if t == nil {
		return false, nil
	}
	delete(r.s.tokens, t.ID)
	return true, nil
}

// Len número de códigos almacenados, vigentes o no.
func (r *PasswordResetTokenRepo) Len() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.tokens)
}

func (s *Store) findValidLocked(userID, token string, now time.Time) *entity.PasswordResetToken {
	var found *entity.PasswordResetToken
	for _, t := range s.tokens {
		if t.UserID != userID || t.Token != token || !t.ValidAt(now) {
			continue
		}
		if found == nil || t.ExpiresAt.After(found.ExpiresAt) {
			found = t
		}
	}
	return found
}
