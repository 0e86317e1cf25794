package entity

// Nombres de los roles sembrados al arrancar.
const (
	RoleAdmin = "Administrador"
	RoleUser  = "Usuario"
)

// Role rol referenciado por User.RoleID.
type Role struct {
	ID          string
	Name        string
	Description string
}

// DefaultRoles roles que deben existir antes de aceptar tráfico.
func DefaultRoles() []Role {
	return []Role{
		{Name: RoleAdmin, Description: "Rol con todos los permisos"},
		{Name: RoleUser, Description: "Rol con permisos limitados"},
	}
}
