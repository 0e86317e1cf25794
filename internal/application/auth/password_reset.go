package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/scoreking-api/internal/application/ports"
	"github.com/jhoicas/scoreking-api/internal/domain"
	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/password"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
	"github.com/jhoicas/scoreking-api/pkg/logger"
)

// Rango de los códigos: [100000, 999999].
const (
	resetCodeMin   = 100000
	resetCodeRange = 900000
)

// PasswordResetUseCase flujo de recuperación con código de 6 dígitos enviado por correo.
//
// Estados de un código: emitido -> consumido (se borra) o expirado (puede seguir en la
// tabla pero ya no es válido). Emitir un código nuevo no invalida los anteriores.
type PasswordResetUseCase struct {
	userRepo    repository.UserRepository
	tokenRepo   repository.PasswordResetTokenRepository
	tx          ResetTxRunner
	mailer      ports.Mailer
	mailTimeout time.Duration
	log         *logger.Logger
	now         func() time.Time
}

// NewPasswordResetUseCase construye el caso de uso.
func NewPasswordResetUseCase(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	tx ResetTxRunner,
	mailer ports.Mailer,
	mailTimeout time.Duration,
	log *logger.Logger,
) *PasswordResetUseCase {
	if mailTimeout <= 0 {
		mailTimeout = 10 * time.Second
	}
	return &PasswordResetUseCase{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		tx:          tx,
		mailer:      mailer,
		mailTimeout: mailTimeout,
		log:         log,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests de expiración).
func (uc *PasswordResetUseCase) WithClock(now func() time.Time) *PasswordResetUseCase {
	uc.now = now
	return uc
}

// RequestReset emite un código para el par (email, cédula) y lo envía por correo.
func (uc *PasswordResetUseCase) RequestReset(ctx context.Context, email, cedula string) error {
	user, err := uc.userRepo.GetByEmailAndCedula(ctx, NormalizeEmail(email), cedula)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}
	now := uc.now()
	token := &entity.PasswordResetToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     code,
		ExpiresAt: now.Add(entity.ResetTokenTTL),
		CreatedAt: now,
	}
	if err := uc.tokenRepo.Create(ctx, token); err != nil {
		return err
	}

	mctx, cancel := context.WithTimeout(ctx, uc.mailTimeout)
	defer cancel()
	if err := uc.mailer.SendPasswordResetCode(mctx, user.Email, code, int(entity.ResetTokenTTL/time.Minute)); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("envío de código de recuperación")
		// Tras un timeout el SMTP puede entregar igual: el código se revoca para que
		// un correo tardío no sirva.
		if _, rerr := uc.tokenRepo.Consume(context.WithoutCancel(ctx), user.ID, code, now); rerr != nil {
			uc.log.Error().Err(rerr).Str("user_id", user.ID).Msg("revocar código no entregado")
		}
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	uc.log.Info().Str("user_id", user.ID).Time("expires_at", token.ExpiresAt).Msg("código de recuperación enviado")
	return nil
}

// VerifyToken comprueba que el código siga vigente sin consumirlo.
func (uc *PasswordResetUseCase) VerifyToken(ctx context.Context, email, token string) error {
	_, err := uc.validToken(ctx, email, token)
	return err
}

// ResetPassword consume el código y guarda la nueva contraseña en una sola transacción.
// Si dos peticiones usan el mismo código a la vez, solo una tiene éxito.
func (uc *PasswordResetUseCase) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	user, err := uc.validToken(ctx, email, token)
	if err != nil {
		return err
	}
	if err := password.ValidateNewPassword(newPassword, user.FirstName, user.LastName); err != nil {
		return err
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	err = uc.tx.RunReset(ctx, func(userRepo repository.UserRepository, tokenRepo repository.PasswordResetTokenRepository) error {
		now := uc.now()
		consumed, err := tokenRepo.Consume(ctx, user.ID, token, now)
		if err != nil {
			return err
		}
		if !consumed {
			return domain.ErrInvalidOrExpiredToken
		}
		return userRepo.UpdatePassword(ctx, user.ID, hash, now)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("contraseña restablecida")
	return nil
}

func (uc *PasswordResetUseCase) validToken(ctx context.Context, email, token string) (*entity.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	found, err := uc.tokenRepo.FindValid(ctx, user.ID, token, uc.now())
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrInvalidOrExpiredToken
	}
	return user, nil
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(resetCodeRange))
	if err != nil {
		return "", fmt.Errorf("generar código: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+resetCodeMin), nil
}
