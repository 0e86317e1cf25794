package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/scoreking-api/internal/application/dto"
	"github.com/jhoicas/scoreking-api/internal/domain"
	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/password"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

// TokenIssuer emite el bearer token de sesión. Lo implementa *jwt.Issuer.
// GeneratePersistent emite tokens que viven tanto como la cookie de "recordarme".
type TokenIssuer interface {
	Generate(userID string) (string, error)
	GeneratePersistent(userID string) (string, error)
}

// AuthUseCase casos de uso de credenciales locales: registro, login y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	tokens   TokenIssuer
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, tokens: tokens, now: time.Now}
}

// Register crea un usuario activo con el rol pedido (por defecto "Usuario") y emite su token.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResult, error) {
	roleName := strings.TrimSpace(in.RoleName)
	if roleName == "" {
		roleName = entity.RoleUser
	}
	role, err := uc.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	isAdmin := role.Name == entity.RoleAdmin
	if isAdmin {
		// El índice único de la tabla cierra la carrera entre dos registros simultáneos.
		exists, err := uc.userRepo.ExistsWithRole(ctx, role.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrAdminAlreadyExists
		}
	}
	if err := password.ValidateNewPassword(in.Password, in.FirstName, in.LastName); err != nil {
		return nil, err
	}

	birthDate, err := ParseDate(in.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("%w: birthDate", domain.ErrInvalidInput)
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	user := &entity.User{
		ID:               uuid.New().String(),
		RoleID:           role.ID,
		Username:         strings.TrimSpace(in.Username),
		Email:            NormalizeEmail(in.Email),
		PasswordHash:     hash,
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Age:              in.Age,
		Country:          strings.TrimSpace(in.Country),
		State:            strings.TrimSpace(in.State),
		City:             strings.TrimSpace(in.City),
		BirthDate:        &birthDate,
		Cedula:           strings.TrimSpace(in.Cedula),
		RegistrationDate: now,
		Status:           entity.UserStatusActive,
		IsAdmin:          isAdmin,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return issueFor(uc.tokens, user, false)
}

// Login verifica email o username y contraseña. Un usuario inexistente y una contraseña
// incorrecta se distinguen (ErrUserNotFound / ErrInvalidCredentials).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResult, error) {
	user, err := uc.userRepo.GetByEmailOrUsername(ctx, strings.TrimSpace(in.EmailOrUsername))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !password.Matches(user.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	return issueFor(uc.tokens, user, in.RememberMe)
}

// Profile devuelve el resumen del usuario autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.UserSummary, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	s := ToUserSummary(user)
	return &s, nil
}

func issueFor(tokens TokenIssuer, user *entity.User, persistent bool) (*dto.AuthResult, error) {
	generate := tokens.Generate
	if persistent {
		generate = tokens.GeneratePersistent
	}
	token, err := generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return &dto.AuthResult{User: ToUserSummary(user), Token: token, Persistent: persistent}, nil
}

// ToUserSummary proyecta la entidad a su forma pública.
func ToUserSummary(u *entity.User) dto.UserSummary {
	return dto.UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NormalizeEmail recorta y pasa a minúsculas; todos los emails se guardan y buscan así.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseDate acepta "2006-01-02" o RFC 3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
