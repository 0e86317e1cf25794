package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/scoreking-api/internal/domain"
	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, role_id, username, email, password_hash, first_name, last_name, age,
	country, state, city, birth_date, cedula, registration_date, status, is_admin, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.RoleID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Age,
		u.Country, u.State, u.City, u.BirthDate, u.Cedula, u.RegistrationDate, u.Status, u.IsAdmin,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			switch constraint {
			case constraintSingleAdmin:
				return domain.ErrAdminAlreadyExists
			case constraintUserEmail:
				return domain.ErrEmailAlreadyExists
			}
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetByEmailOrUsername busca por email (normalizado) o username exacto; gana el email.
func (r *UserRepo) GetByEmailOrUsername(ctx context.Context, emailOrUsername string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE email = lower($1) OR username = $1
		ORDER BY (email = lower($1)) DESC, created_at
		LIMIT 1`
	return r.getOne(ctx, "get user by email or username", query, emailOrUsername)
}

// GetByEmailAndCedula busca por el par (email, cédula).
func (r *UserRepo) GetByEmailAndCedula(ctx context.Context, email, cedula string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND cedula = $2`
	return r.getOne(ctx, "get user by email and cedula", query, email, cedula)
}

// ExistsWithRole indica si algún usuario referencia el rol.
func (r *UserRepo) ExistsWithRole(ctx context.Context, roleID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE role_id = $1)`, roleID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists user with role: %w", err)
	}
	return exists, nil
}

// UpdateUsername actualiza el nombre de usuario.
func (r *UserRepo) UpdateUsername(ctx context.Context, id, username string, at time.Time) error {
	return r.update(ctx, "update username", `UPDATE users SET username = $2, updated_at = $3 WHERE id = $1`, id, username, at)
}

// UpdatePassword actualiza el hash de contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error {
	return r.update(ctx, "update password", `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`, id, passwordHash, at)
}

// UpdateStatus actualiza el estado de la cuenta.
func (r *UserRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	return r.update(ctx, "update status", `UPDATE users SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
}

func (r *UserRepo) update(ctx context.Context, op, query, id string, value any, at time.Time) error {
	if !validID(id) {
		return domain.ErrUserNotFound
	}
	tag, err := r.q.Exec(ctx, query, id, value, at)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.RoleID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Age,
		&u.Country, &u.State, &u.City, &u.BirthDate, &u.Cedula, &u.RegistrationDate, &u.Status, &u.IsAdmin,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
