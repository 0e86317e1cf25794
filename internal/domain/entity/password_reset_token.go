package entity

import "time"

// ResetTokenTTL vigencia de un código de recuperación.
const ResetTokenTTL = 5 * time.Minute

// PasswordResetToken código de 6 dígitos de un solo uso.
type PasswordResetToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ValidAt indica si el token sigue vigente en el instante t.
func (t *PasswordResetToken) ValidAt(now time.Time) bool {
	return now.Before(t.ExpiresAt)
}
