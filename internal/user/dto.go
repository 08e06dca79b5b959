// AngelaMos | 2026
// dto.go

package user

import "time"

type CreateUserRequest struct {
	Email    string  `json:"email"     validate:"required,email,max=255"`
	Password string  `json:"password"  validate:"required,min=8,max=128"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
	Phone    *string `json:"phone"     validate:"omitempty,max=50"`
	Role     string  `json:"role"      validate:"required"`

	// Honored only for super admins; everyone else creates users in their
	// own tenant.
	TenantID *int64 `json:"operator_id"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
	Phone    *string `json:"phone"     validate:"omitempty,max=50"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Phone     *string   `json:"phone"`
	Role      string    `json:"role"`
	TenantID  *int64    `json:"operator_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Role:      u.Role,
		TenantID:  u.TenantID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toResponseList(users []User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i := range users {
		out[i] = toResponse(&users[i])
	}
	return out
}
