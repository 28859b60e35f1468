// Package repository provides data access for user accounts.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrHasLeads          = errors.New("user still referenced by leads")
)

// User is one account row.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

// CreateUserParams carries the fields of a new account.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	Role         string
	IsActive     bool
}

// UpdateUserParams carries a partial account update; nil fields are kept.
type UpdateUserParams struct {
	Username     *string
	PasswordHash *string
	Role         *string
	IsActive     *bool
}

// Repository handles user persistence.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, username, password_hash, role, is_active, created_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *Repository) Create(ctx context.Context, params CreateUserParams) (User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns+`
	`, params.Username, params.PasswordHash, params.Role, params.IsActive))
	if isUniqueViolation(err) {
		return User{}, ErrDuplicateUsername
	}
	return user, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE username = $1
	`, username))
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `
		UPDATE users SET
			username = COALESCE($2, username),
			password_hash = COALESCE($3, password_hash),
			role = COALESCE($4, role),
			is_active = COALESCE($5, is_active)
		WHERE id = $1
		RETURNING `+userColumns+`
	`, id, params.Username, params.PasswordHash, params.Role, params.IsActive))
	if isUniqueViolation(err) {
		return User{}, ErrDuplicateUsername
	}
	return user, err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrHasLeads
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
