package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/scoreking-api/internal/application/auth"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

var _ auth.ResetTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool   *pgxpool.Pool
	tokens repository.PasswordResetTokenRepository
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// WithTokenStore usa un almacén externo de códigos (p. ej. Redis) en lugar de la tabla
// password_reset_tokens. El consumo sigue siendo atómico en ese almacén; la contraseña
// se guarda en la transacción.
func (r *TxRunner) WithTokenStore(tokens repository.PasswordResetTokenRepository) *TxRunner {
	cp := *r
	cp.tokens = tokens
	return &cp
}

// RunReset inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunReset(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	var tokenRepo repository.PasswordResetTokenRepository = NewPasswordResetTokenRepository(tx)
	if r.tokens != nil {
		tokenRepo = r.tokens
	}

	if err := fn(userRepo, tokenRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
