package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/trip-service/internal/domain"
)

// UserRepository is the credential store: it owns user records and their
// role assignments. Only the auth service calls its mutating methods.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	CreateRole(ctx context.Context, name string) error
	AssignRole(ctx context.Context, username, roleName string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT u.username, u.password_hash, u.created_at,
               COALESCE(array_agg(upper(r.role_name)) FILTER (WHERE r.role_name IS NOT NULL), '{}')
        FROM users u
        LEFT JOIN user_roles ur ON ur.username = u.username
        LEFT JOIN roles r ON r.role_name = ur.role_name
        WHERE u.username = $1
        GROUP BY u.username, u.password_hash, u.created_at`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.Roles,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, password_hash)
        VALUES ($1, $2)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
	).Scan(&user.CreatedAt)
}

func (r *userRepository) CreateRole(ctx context.Context, name string) error {
	const query = `
        INSERT INTO roles (role_name)
        VALUES (upper($1))
        ON CONFLICT (role_name) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, name)
	return err
}

// AssignRole attaches a role to a user as one atomic unit. The session is
// released on every exit path; pgx.ErrNoRows signals a missing user or
// role.
func (r *userRepository) AssignRole(ctx context.Context, username, roleName string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return pgx.ErrNoRows
	}

	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM roles WHERE role_name = upper($1))`, roleName,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `
        INSERT INTO user_roles (username, role_name)
        VALUES ($1, upper($2))
        ON CONFLICT DO NOTHING`, username, roleName); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
