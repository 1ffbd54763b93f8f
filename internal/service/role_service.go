package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/repository"
	apperrors "github.com/spec-kit/venue-service/pkg/util"
)

// RoleService manages the role catalogue.
type RoleService struct {
	roles repository.RoleRepository
}

// NewRoleService builds the service.
func NewRoleService(roles repository.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

// RoleCreateInput carries new-role fields.
type RoleCreateInput struct {
	Code       string
	Name       string
	Descr      string
	RoleType   domain.RoleType
	MerchantID *int64
}

// Create adds a role. Codes are unique; they feed authority strings.
func (s *RoleService) Create(ctx context.Context, input RoleCreateInput) (*domain.Role, error) {
	if _, err := s.roles.GetByCode(ctx, input.Code); err == nil {
		return nil, apperrors.NewConflict("role code already exists", map[string]any{"code": input.Code})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	roleType := input.RoleType
	if roleType == "" {
		roleType = domain.RoleTypeCustom
	}

	role := &domain.Role{
		Code:       input.Code,
		Name:       input.Name,
		Descr:      input.Descr,
		RoleType:   roleType,
		MerchantID: input.MerchantID,
		Status:     domain.RoleStatusActive,
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// List returns all roles.
func (s *RoleService) List(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.List(ctx)
}
