package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

var _ repository.PasswordResetTokenRepository = (*PasswordResetTokenRepo)(nil)

// PasswordResetTokenRepo códigos de recuperación sobre PostgreSQL (pool o tx).
type PasswordResetTokenRepo struct {
	q Querier
}

// NewPasswordResetTokenRepository construye el adaptador.
func NewPasswordResetTokenRepository(q Querier) *PasswordResetTokenRepo {
	return &PasswordResetTokenRepo{q: q}
}

// Create persiste un código nuevo.
func (r *PasswordResetTokenRepo) Create(ctx context.Context, t *entity.PasswordResetToken) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO password_reset_tokens (id, user_id, token, expires_at, created_at) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.UserID, t.Token, t.ExpiresAt, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert password reset token: %w", err)
	}
	return nil
}

// FindValid devuelve el código vigente más reciente para (userID, token).
func (r *PasswordResetTokenRepo) FindValid(ctx context.Context, userID, token string, now time.Time) (*entity.PasswordResetToken, error) {
	if !validID(userID) {
		return nil, nil
	}
	var t entity.PasswordResetToken
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, token, expires_at, created_at
		FROM password_reset_tokens
		WHERE user_id = $1 AND token = $2 AND expires_at > $3
		ORDER BY expires_at DESC
		LIMIT 1`, userID, token, now,
	).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find password reset token: %w", err)
	}
	return &t, nil
}

// Consume borra el código vigente. FOR UPDATE serializa a los consumidores concurrentes:
// el segundo espera al primero y, tras su commit, ya no encuentra la fila.
func (r *PasswordResetTokenRepo) Consume(ctx context.Context, userID, token string, now time.Time) (bool, error) {
	if !validID(userID) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx, `
		DELETE FROM password_reset_tokens
		WHERE id = (
			SELECT id FROM password_reset_tokens
			WHERE user_id = $1 AND token = $2 AND expires_at > $3
			ORDER BY expires_at DESC
			LIMIT 1
			FOR UPDATE
		)`, userID, token, now,
	)
	if err != nil {
		return false, fmt.Errorf("consume password reset token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteExpired limpia códigos vencidos; devuelve cuántos borró.
func (r *PasswordResetTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired password reset tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
