package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/scoreking-api/internal/application/auth"
	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

var _ auth.ResetTxRunner = (*TxRunner)(nil)

// TxRunner serializa las unidades de trabajo y deshace los consumos de códigos
// si fn devuelve error.
type TxRunner struct {
	s  *Store
	mu sync.Mutex
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) RunReset(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokens := &journalTokenRepo{PasswordResetTokenRepo: r.s.ResetTokens()}
	if err := fn(r.s.Users(), tokens); err != nil {
		tokens.rollback()
		return err
	}
	return nil
}

// journalTokenRepo recuerda los códigos consumidos para poder restaurarlos.
type journalTokenRepo struct {
	*PasswordResetTokenRepo
	consumed []entity.PasswordResetToken
}

func (j *journalTokenRepo) Consume(_ context.Context, userID, token string, now time.Time) (bool, error) {
	s := j.s
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.findValidLocked(userID, token, now)
	if t == nil {
		return false, nil
	}
	j.consumed = append(j.consumed, *t)
	delete(s.tokens, t.ID)
	return true, nil
}

func (j *journalTokenRepo) rollback() {
	s := j.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range j.consumed {
		t := j.consumed[i]
		s.tokens[t.ID] = &t
	}
}
