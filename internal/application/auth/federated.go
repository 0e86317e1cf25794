package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/scoreking-api/internal/application/dto"
	"github.com/jhoicas/scoreking-api/internal/application/ports"
	"github.com/jhoicas/scoreking-api/internal/domain"
	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

// Valores por defecto de las cuentas creadas desde Google; el usuario los completa después.
const federatedDefaultAge = 18

// FederatedUseCase login con Google: verifica el ID token y enlaza o crea la cuenta local.
type FederatedUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	verifier ports.IdentityVerifier
	tokens   TokenIssuer
	timeout  time.Duration
	now      func() time.Time
}

// NewFederatedUseCase construye el caso de uso. timeout acota la verificación con el proveedor.
func NewFederatedUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	verifier ports.IdentityVerifier,
	tokens TokenIssuer,
	timeout time.Duration,
) *FederatedUseCase {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &FederatedUseCase{
		userRepo: userRepo,
		roleRepo: roleRepo,
		verifier: verifier,
		tokens:   tokens,
		timeout:  timeout,
		now:      time.Now,
	}
}

// GoogleLogin verifica credential con el proveedor y completa el login federado.
func (uc *FederatedUseCase) GoogleLogin(ctx context.Context, credential string) (*dto.AuthResult, error) {
	vctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	identity, err := uc.verifier.Verify(vctx, credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIdentityVerificationFailed, err)
	}
	if identity.Email == "" || !identity.EmailVerified {
		return nil, fmt.Errorf("%w: email no verificado", domain.ErrIdentityVerificationFailed)
	}
	return uc.CompleteFederatedLogin(ctx, identity.Email, identity.GivenName, identity.FamilyName)
}

// CompleteFederatedLogin recibe claims ya verificados. Idempotente por email: nunca crea
// un segundo usuario para el mismo email.
func (uc *FederatedUseCase) CompleteFederatedLogin(ctx context.Context, verifiedEmail, givenName, familyName string) (*dto.AuthResult, error) {
	email := NormalizeEmail(verifiedEmail)
	if email == "" {
		return nil, fmt.Errorf("%w: email vacío", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = uc.provision(ctx, email, givenName, familyName)
		if err != nil {
			return nil, err
		}
	}
	return issueFor(uc.tokens, user, false)
}

func (uc *FederatedUseCase) provision(ctx context.Context, email, givenName, familyName string) (*entity.User, error) {
	role, err := uc.roleRepo.GetByName(ctx, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	now := uc.now()
	user := &entity.User{
		ID:               uuid.New().String(),
		RoleID:           role.ID,
		Username:         usernameFromEmail(email),
		Email:            email,
		FirstName:        strings.TrimSpace(givenName),
		LastName:         strings.TrimSpace(familyName),
		Age:              federatedDefaultAge,
		RegistrationDate: now,
		Status:           entity.UserStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err = uc.userRepo.Create(ctx, user)
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		// Otro login simultáneo creó la cuenta primero.
		existing, gerr := uc.userRepo.GetByEmail(ctx, email)
		if gerr != nil {
			return nil, gerr
		}
		if existing == nil {
			return nil, err
		}
		return existing, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
