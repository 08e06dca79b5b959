// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

type User struct {
	ID           int64      `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	FullName     *string    `db:"full_name"`
	Phone        *string    `db:"phone"`
	Role         string     `db:"role"`
	TenantID     *int64     `db:"operator_id"`
	IsActive     bool       `db:"is_active"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

type Operator struct {
	ID           int64      `db:"id"`
	CompanyName  string     `db:"company_name"`
	ContactEmail string     `db:"contact_email"`
	ContactPhone *string    `db:"contact_phone"`
	Address      *string    `db:"address"`
	IsActive     bool       `db:"is_active"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}
