package entity

import "time"

// Estados válidos de User.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User representa una cuenta del sistema.
type User struct {
	ID               string
	RoleID           string
	Username         string
	Email            string
	PasswordHash     string // vacío solo en cuentas creadas por Google
	FirstName        string
	LastName         string
	Age              int
	Country          string
	State            string
	City             string
	BirthDate        *time.Time
	Cedula           string
	RegistrationDate time.Time
	Status           string // active, inactive, suspended
	IsAdmin          bool   // espejo de RoleID == rol Administrador; respaldado por índice único
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsFederated indica si la cuenta no tiene contraseña local.
func (u *User) IsFederated() bool {
	return u.PasswordHash == ""
}
