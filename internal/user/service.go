// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

var (
	ErrEmailExists       = errors.New("email already registered")
	ErrRoleNotAssignable = errors.New("role not assignable by caller")
	ErrSelfDelete        = errors.New("cannot delete own account")
)

type Service interface {
	List(ctx context.Context, actor *rbac.Identity) ([]*UserResponse, error)
	Get(
		ctx context.Context,
		actor *rbac.Identity,
		id int64,
	) (*UserResponse, error)
	Create(
		ctx context.Context,
		actor *rbac.Identity,
		req *CreateUserRequest,
	) (*UserResponse, error)
	Update(
		ctx context.Context,
		actor *rbac.Identity,
		id int64,
		req *UpdateUserRequest,
	) (*UserResponse, error)
	ChangePassword(
		ctx context.Context,
		actor *rbac.Identity,
		id int64,
		req *ChangePasswordRequest,
	) error
	Delete(ctx context.Context, actor *rbac.Identity, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(
	ctx context.Context,
	actor *rbac.Identity,
) ([]*UserResponse, error) {
	users, err := s.repo.List(ctx, rbac.ResolveScope(actor))
	if err != nil {
		return nil, err
	}
	return toResponseList(users), nil
}

func (s *service) Get(
	ctx context.Context,
	actor *rbac.Identity,
	id int64,
) (*UserResponse, error) {
	u, err := s.repo.GetByID(ctx, rbac.ResolveScope(actor), id)
	if err != nil {
		return nil, err
	}
	return toResponse(u), nil
}

func (s *service) Create(
	ctx context.Context,
	actor *rbac.Identity,
	req *CreateUserRequest,
) (*UserResponse, error) {
	if !rbac.IsValidRole(req.Role) {
		return nil, core.ValidationError(
			fmt.Sprintf("unknown role %q", req.Role))
	}

	if !rbac.CanAssignRole(actor.Role, req.Role) {
		return nil, fmt.Errorf("create user: %w", ErrRoleNotAssignable)
	}

	if err := core.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("create user: %w", ErrEmailExists)
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Tenant assignment follows the actor, not the request. Only a super
	// admin may place the new user in an arbitrary tenant.
	tenantID := actor.TenantID
	if actor.IsSuperAdmin() && req.TenantID != nil {
		tenantID = req.TenantID
	}

	u := &User{
		Email:        email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         req.Role,
		TenantID:     tenantID,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf("create user: %w", ErrEmailExists)
		}
		return nil, err
	}

	return toResponse(u), nil
}

func (s *service) Update(
	ctx context.Context,
	actor *rbac.Identity,
	id int64,
	req *UpdateUserRequest,
) (*UserResponse, error) {
	scope := rbac.ResolveScope(actor)

	u, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	// Managing a user at or above your own level is off limits, whether or
	// not the role itself is changing.
	if actor.UserID != u.ID && !rbac.CanAssignRole(actor.Role, u.Role) {
		return nil, fmt.Errorf("update user: %w", ErrRoleNotAssignable)
	}

	if req.Role != nil && *req.Role != u.Role {
		if !rbac.IsValidRole(*req.Role) {
			return nil, core.ValidationError(
				fmt.Sprintf("unknown role %q", *req.Role))
		}
		if !rbac.CanAssignRole(actor.Role, *req.Role) {
			return nil, fmt.Errorf("update user: %w", ErrRoleNotAssignable)
		}
		u.Role = *req.Role
	}

	if req.FullName != nil {
		u.FullName = req.FullName
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, scope, u); err != nil {
		return nil, err
	}

	return toResponse(u), nil
}

func (s *service) ChangePassword(
	ctx context.Context,
	actor *rbac.Identity,
	id int64,
	req *ChangePasswordRequest,
) error {
	scope := rbac.ResolveScope(actor)

	u, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return err
	}

	if actor.UserID != u.ID && !rbac.CanAssignRole(actor.Role, u.Role) {
		return fmt.Errorf("change password: %w", ErrRoleNotAssignable)
	}

	if err := core.ValidatePasswordStrength(req.NewPassword); err != nil {
		return err
	}

	hash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, u.ID, hash)
}

func (s *service) Delete(
	ctx context.Context,
	actor *rbac.Identity,
	id int64,
) error {
	if actor.UserID == id {
		return fmt.Errorf("delete user: %w", ErrSelfDelete)
	}

	scope := rbac.ResolveScope(actor)

	u, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return err
	}

	if !rbac.CanAssignRole(actor.Role, u.Role) {
		return fmt.Errorf("delete user: %w", ErrRoleNotAssignable)
	}

	return s.repo.SoftDelete(ctx, scope, u.ID)
}
