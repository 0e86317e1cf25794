package dto

import "time"

// RegisterRequest entrada de registro. registrationDate y status se aceptan por compatibilidad
// con el frontend pero el servidor siempre usa "ahora" y "active".
type RegisterRequest struct {
	RoleName         string `json:"roleName" validate:"omitempty,max=50"`
	Username         string `json:"username" validate:"required,min=3,max=50"`
	Email            string `json:"email" validate:"required,email,max=254"`
	Password         string `json:"password" validate:"required"`
	ConfirmPassword  string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FirstName        string `json:"firstName" validate:"required,max=100"`
	LastName         string `json:"lastName" validate:"required,max=100"`
	Age              int    `json:"age" validate:"required,gte=18,lte=130"`
	Country          string `json:"country" validate:"required,max=100"`
	State            string `json:"state" validate:"required,max=100"`
	City             string `json:"city" validate:"required,max=100"`
	BirthDate        string `json:"birthDate" validate:"required,date"`
	Cedula           string `json:"cedula" validate:"required,max=30"`
	RegistrationDate string `json:"registrationDate" validate:"omitempty,date"`
	Status           string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" validate:"required,max=254"`
	Password        string `json:"password" validate:"required"`
	RememberMe      bool   `json:"rememberMe"`
}

// GoogleLoginRequest ID token emitido por Google Identity Services.
type GoogleLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// ForgotPasswordRequest solicitud de código de recuperación.
type ForgotPasswordRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Cedula string `json:"cedula" validate:"required"`
}

// VerifyResetTokenRequest verificación del código.
type VerifyResetTokenRequest struct {
	Email      string `json:"email" validate:"required,email"`
	ResetToken string `json:"resetToken" validate:"required,numeric,len=6"`
}

// ResetPasswordRequest cambio de contraseña con código.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	ResetToken  string `json:"resetToken" validate:"required,numeric,len=6"`
	NewPassword string `json:"newPassword" validate:"required,min=10,max=72"`
}

// UpdateUsernameRequest ajuste de nombre de usuario.
type UpdateUsernameRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
}

// ChangePasswordRequest ajuste de contraseña con la actual.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=10,max=72"`
}

// UserSummary salida pública de un usuario (nunca incluye el hash).
type UserSummary struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResult usuario autenticado más el token a entregar en la cookie.
type AuthResult struct {
	User       UserSummary
	Token      string
	Persistent bool // rememberMe: cookie con Max-Age en vez de cookie de sesión
}
