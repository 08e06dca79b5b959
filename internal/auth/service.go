// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is not active")
	ErrEmailExists        = errors.New("email already exists")
)

type Service struct {
	repo   Repository
	tokens *TokenManager
}

func NewService(repo Repository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, _, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return s.buildAuthResponse(ctx, user)
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	if err := core.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	email := strings.ToLower(req.Email)

	// Fast-path duplicate check; the users.email unique constraint is the
	// guarantee under concurrent registrations.
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	operator := &Operator{
		CompanyName:  req.CompanyName,
		ContactEmail: email,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	}

	user := &User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         rbac.RoleOperatorAdmin,
	}

	if err := s.repo.CreateTenantWithAdmin(ctx, operator, user); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	token, err := s.tokens.Issue(&rbac.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		TenantID: user.TenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResponse{
		Token: token,
		User: UserResponse{
			ID:          user.ID,
			Email:       user.Email,
			Role:        user.Role,
			TenantID:    user.TenantID,
			CompanyName: &operator.CompanyName,
			Phone:       operator.ContactPhone,
		},
	}, nil
}

func (s *Service) GetMe(
	ctx context.Context,
	identity *rbac.Identity,
) (*MeResponse, error) {
	user, err := s.repo.GetUserByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	return &MeResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Role:      user.Role,
		TenantID:  user.TenantID,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *Service) buildAuthResponse(
	ctx context.Context,
	user *User,
) (*AuthResponse, error) {
	resp := UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Role:     user.Role,
		TenantID: user.TenantID,
	}

	if user.TenantID != nil {
		operator, err := s.repo.GetOperatorByID(ctx, *user.TenantID)
		if err == nil {
			resp.CompanyName = &operator.CompanyName
			resp.Phone = operator.ContactPhone
		} else if !errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("get operator: %w", err)
		}
	}

	token, err := s.tokens.Issue(&rbac.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		TenantID: user.TenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResponse{Token: token, User: resp}, nil
}
