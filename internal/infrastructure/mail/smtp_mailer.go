// Package mail envía los códigos de recuperación por SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/scoreking-api/internal/application/ports"
	"github.com/jhoicas/scoreking-api/pkg/config"
	"github.com/jhoicas/scoreking-api/pkg/logger"
)

var (
	_ ports.Mailer = (*SMTPMailer)(nil)
	_ ports.Mailer = (*LogMailer)(nil)
)

const resetSubject = "Código de recuperación de contraseña"

var resetBody = template.Must(template.New("reset").Parse(`<h1>Recuperación de contraseña</h1>
<p>Tu código de recuperación es:</p>
<p style="font-size:24px;font-weight:bold;letter-spacing:4px">{{.Code}}</p>
<p>El código vence en {{.Minutes}} minutos. Si no lo solicitaste, ignora este correo.</p>`))

// Sender abstrae gomail.Dialer para poder sustituirlo en tests.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer implementa ports.Mailer con gomail.
type SMTPMailer struct {
	from   string
	sender Sender
}

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return NewSMTPMailerWithSender(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password))
}

// NewSMTPMailerWithSender permite inyectar el transporte.
func NewSMTPMailerWithSender(from string, sender Sender) *SMTPMailer {
	return &SMTPMailer{from: from, sender: sender}
}

// SendPasswordResetCode arma el mensaje y lo envía. gomail no acepta contexto: el envío
// corre en una goroutine y la llamada vuelve en cuanto ctx se cancela. Esa goroutine
// sigue hasta que DialAndSend termina (gomail fija 10s para el dial), así que el correo
// puede llegar después de un timeout; quien llama debe invalidar el código en ese caso.
func (m *SMTPMailer) SendPasswordResetCode(ctx context.Context, to, code string, ttlMinutes int) error {
	var body bytes.Buffer
	if err := resetBody.Execute(&body, struct {
		Code    string
		Minutes int
	}{code, ttlMinutes}); err != nil {
		return fmt.Errorf("mail: plantilla: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", resetSubject)
	msg.SetBody("text/html", body.String())

	done := make(chan error, 1)
	go func() { done <- m.sender.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mail: enviar a %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mail: timeout o cancelación: %w", ctx.Err())
	}
}

// LogMailer no envía nada: registra el código. Solo para desarrollo sin SMTP_HOST.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el mailer de desarrollo.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordResetCode(_ context.Context, to, code string, ttlMinutes int) error {
	m.log.Warn().Str("to", to).Str("code", code).Int("ttl_minutes", ttlMinutes).
		Msg("SMTP_HOST vacío: código de recuperación no enviado")
	return nil
}
