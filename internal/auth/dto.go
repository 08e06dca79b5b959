// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type RegisterRequest struct {
	Email        string  `json:"email"         validate:"required,email,max=255"`
	Password     string  `json:"password"      validate:"required,min=8,max=128"`
	CompanyName  string  `json:"company_name"  validate:"required,min=1,max=255"`
	ContactPhone *string `json:"contact_phone" validate:"omitempty,max=50"`
	Address      *string `json:"address"       validate:"omitempty,max=500"`
}

type UserResponse struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	TenantID    *int64  `json:"operator_id"`
	CompanyName *string `json:"company_name"`
	Phone       *string `json:"phone"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type PermissionsResponse struct {
	Role        string              `json:"role"`
	RoleLevel   int                 `json:"role_level"`
	Modules     []string            `json:"modules"`
	Permissions map[string][]string `json:"permissions"`
}

type MeResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Phone     *string   `json:"phone"`
	Role      string    `json:"role"`
	TenantID  *int64    `json:"operator_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
