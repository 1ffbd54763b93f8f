package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/venue-service/internal/auth"
	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/repository"
	apperrors "github.com/spec-kit/venue-service/pkg/util"
)

// UserService handles administrative account management.
type UserService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, roles repository.RoleRepository, bcryptCost int, logger *zap.Logger) *UserService {
	return &UserService{users: users, roles: roles, logger: logger, bcryptCost: bcryptCost}
}

// UserCreateInput carries admin-created account fields.
type UserCreateInput struct {
	Username   string
	Password   string
	RealName   string
	Phone      string
	Email      string
	UserType   string
	MerchantID *int64
}

// Create provisions an account with an explicit type. Unlike registration,
// an unrecognized type here is a caller bug and is rejected.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	userType, known := domain.ParseUserType(input.UserType)
	if !known {
		return nil, apperrors.NewValidationError("unknown user type", map[string]any{"user_type": input.UserType})
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict("username already taken", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		RealName:     input.RealName,
		Phone:        input.Phone,
		Email:        input.Email,
		UserType:     userType,
		MerchantID:   input.MerchantID,
		Status:       domain.UserStatusActive,
		MemberLevel:  domain.MemberLevelBronze,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get loads an account with its roles.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// List returns a filtered page of accounts plus a total count.
func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]*domain.User, int64, error) {
	return s.users.List(ctx, filter)
}

// UserUpdateInput carries mutable profile fields.
type UserUpdateInput struct {
	RealName *string
	Phone    *string
	Email    *string
}

// Update patches an account's profile fields.
func (s *UserService) Update(ctx context.Context, id int64, input UserUpdateInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.RealName != nil {
		user.RealName = *input.RealName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangeStatus moves an account between ACTIVE, INACTIVE, and LOCKED.
func (s *UserService) ChangeStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	switch status {
	case domain.UserStatusActive, domain.UserStatusInactive, domain.UserStatusLocked:
	default:
		return apperrors.NewValidationError("unknown user status", map[string]any{"status": status})
	}

	if err := s.users.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return err
	}
	s.logger.Info("user status changed", zap.Int64("user_id", id), zap.String("status", string(status)))
	return nil
}

// AssignRoles replaces an account's role set. Every role id must exist.
func (s *UserService) AssignRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	for _, roleID := range roleIDs {
		if _, err := s.roles.GetByID(ctx, roleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewValidationError("unknown role", map[string]any{"role_id": roleID})
			}
			return err
		}
	}
	return s.users.AssignRoles(ctx, userID, roleIDs)
}
