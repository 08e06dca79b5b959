// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/tourops-backend/internal/core"
)

type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetOperatorByID(ctx context.Context, id int64) (*Operator, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CreateTenantWithAdmin(
		ctx context.Context,
		operator *Operator,
		user *User,
	) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetUserByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `
		SELECT id, email, password_hash, full_name, phone, role, operator_id,
		       is_active, created_at, updated_at, deleted_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) GetUserByID(
	ctx context.Context,
	id int64,
) (*User, error) {
	query := `
		SELECT id, email, password_hash, full_name, phone, role, operator_id,
		       is_active, created_at, updated_at, deleted_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetOperatorByID(
	ctx context.Context,
	id int64,
) (*Operator, error) {
	query := `
		SELECT id, company_name, contact_email, contact_phone, address,
		       is_active, created_at, updated_at, deleted_at
		FROM operators
		WHERE id = $1 AND deleted_at IS NULL`

	var operator Operator
	err := r.db.GetContext(ctx, &operator, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get operator: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get operator: %w", err)
	}

	return &operator, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

// CreateTenantWithAdmin inserts the operator and its first admin user in one
// transaction. The unique constraint on users.email is the real duplicate
// guard; the service's pre-check is only a fast path.
func (r *repository) CreateTenantWithAdmin(
	ctx context.Context,
	operator *Operator,
	user *User,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		operatorQuery := `
			INSERT INTO operators (
				company_name, contact_email, contact_phone, address, is_active
			) VALUES ($1, $2, $3, $4, true)
			RETURNING id, is_active, created_at, updated_at`

		err := tx.QueryRowxContext(ctx, operatorQuery,
			operator.CompanyName,
			operator.ContactEmail,
			operator.ContactPhone,
			operator.Address,
		).Scan(
			&operator.ID,
			&operator.IsActive,
			&operator.CreatedAt,
			&operator.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert operator: %w", err)
		}

		user.TenantID = &operator.ID

		userQuery := `
			INSERT INTO users (
				email, password_hash, role, operator_id, is_active
			) VALUES ($1, $2, $3, $4, true)
			RETURNING id, is_active, created_at, updated_at`

		err = tx.QueryRowxContext(ctx, userQuery,
			user.Email,
			user.PasswordHash,
			user.Role,
			user.TenantID,
		).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			if core.IsDuplicateKey(err) {
				return fmt.Errorf("insert user: %w", core.ErrDuplicateKey)
			}
			return fmt.Errorf("insert user: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("create tenant with admin: %w", err)
	}

	return nil
}
