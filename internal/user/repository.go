// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, scope rbac.Scope, id int64) (*User, error)
	Update(ctx context.Context, scope rbac.Scope, user *User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SoftDelete(ctx context.Context, scope rbac.Scope, id int64) error
	List(ctx context.Context, scope rbac.Scope) ([]User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `
	id, email, password_hash, full_name, phone, role, operator_id,
	is_active, created_at, updated_at, deleted_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (
			email, password_hash, full_name, phone, role, operator_id,
			is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Phone,
		user.Role,
		user.TenantID,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKey(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	scope rbac.Scope,
	id int64,
) (*User, error) {
	query := `SELECT` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`
	args := []any{id}

	if !scope.Unrestricted() {
		args = append(args, scope.TenantID())
		query += fmt.Sprintf(" AND operator_id = $%d", len(args))
	}

	var user User
	err := r.db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) Update(
	ctx context.Context,
	scope rbac.Scope,
	user *User,
) error {
	query := `
		UPDATE users
		SET full_name = $2, phone = $3, role = $4, is_active = $5,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`
	args := []any{
		user.ID, user.FullName, user.Phone, user.Role, user.IsActive,
	}

	if !scope.Unrestricted() {
		args = append(args, scope.TenantID())
		query += fmt.Sprintf(" AND operator_id = $%d", len(args))
	}

	query += " RETURNING updated_at"

	err := r.db.QueryRowxContext(ctx, query, args...).Scan(&user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SoftDelete(
	ctx context.Context,
	scope rbac.Scope,
	id int64,
) error {
	query := `
		UPDATE users
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`
	args := []any{id}

	if !scope.Unrestricted() {
		args = append(args, scope.TenantID())
		query += fmt.Sprintf(" AND operator_id = $%d", len(args))
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	scope rbac.Scope,
) ([]User, error) {
	query := `SELECT` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL`
	var args []any

	if !scope.Unrestricted() {
		args = append(args, scope.TenantID())
		query += fmt.Sprintf(" AND operator_id = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}
