package ports

import "context"

// Mailer puerto de salida para el envío de correos transaccionales.
// La implementación debe respetar la cancelación de ctx.
type Mailer interface {
	SendPasswordResetCode(ctx context.Context, to, code string, ttlMinutes int) error
}
