// AngelaMos | 2026
// entity.go

package user

import "time"

type User struct {
	ID           int64      `db:"id"            json:"id"`
	Email        string     `db:"email"         json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     *string    `db:"full_name"     json:"full_name"`
	Phone        *string    `db:"phone"         json:"phone"`
	Role         string     `db:"role"          json:"role"`
	TenantID     *int64     `db:"operator_id"   json:"operator_id"`
	IsActive     bool       `db:"is_active"     json:"is_active"`
	CreatedAt    time.Time  `db:"created_at"    json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"    json:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"    json:"-"`
}
