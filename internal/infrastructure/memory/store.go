// Package memory implementa los puertos de persistencia en memoria. Lo usan los tests y
// el arranque con STORE_DRIVER=memory; mantiene las mismas garantías que PostgreSQL
// (email único, un solo administrador, consumo atómico de códigos).
package memory

import (
	"sync"

	"github.com/jhoicas/scoreking-api/internal/domain/entity"
)

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*entity.User
	roles    map[string]*entity.Role // por nombre
	tokens   map[string]*entity.PasswordResetToken
	payments map[string]*entity.Payment // por provider + "/" + external id
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]*entity.User),
		roles:    make(map[string]*entity.Role),
		tokens:   make(map[string]*entity.PasswordResetToken),
		payments: make(map[string]*entity.Payment),
	}
}

// Users repositorio de usuarios sobre este almacén.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Roles repositorio de roles sobre este almacén.
func (s *Store) Roles() *RoleRepo { return &RoleRepo{s: s} }

// ResetTokens repositorio de códigos de recuperación sobre este almacén.
func (s *Store) ResetTokens() *PasswordResetTokenRepo { return &PasswordResetTokenRepo{s: s} }

// Payments repositorio de pagos sobre este almacén.
func (s *Store) Payments() *PaymentRepo { return &PaymentRepo{s: s} }

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	if u.BirthDate != nil {
		bd := *u.BirthDate
		cp.BirthDate = &bd
	}
	return &cp
}
