package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/repository"
	apperrors "github.com/spec-kit/venue-service/pkg/util"
)

// MerchantService handles merchant administration.
type MerchantService struct {
	merchants repository.MerchantRepository
}

// NewMerchantService builds the service.
func NewMerchantService(merchants repository.MerchantRepository) *MerchantService {
	return &MerchantService{merchants: merchants}
}

// MerchantCreateInput carries new-merchant fields.
type MerchantCreateInput struct {
	Code         string
	Name         string
	ContactName  string
	ContactPhone string
	Address      string
}

// Create registers a merchant in ACTIVE state.
func (s *MerchantService) Create(ctx context.Context, input MerchantCreateInput) (*domain.Merchant, error) {
	merchant := &domain.Merchant{
		Code:         input.Code,
		Name:         input.Name,
		ContactName:  input.ContactName,
		ContactPhone: input.ContactPhone,
		Address:      input.Address,
		Status:       domain.MerchantStatusActive,
	}
	if err := s.merchants.Create(ctx, merchant); err != nil {
		return nil, err
	}
	return merchant, nil
}

// Get loads a merchant.
func (s *MerchantService) Get(ctx context.Context, id int64) (*domain.Merchant, error) {
	merchant, err := s.merchants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("merchant", map[string]any{"id": id})
		}
		return nil, err
	}
	return merchant, nil
}

// List returns all merchants.
func (s *MerchantService) List(ctx context.Context) ([]*domain.Merchant, error) {
	return s.merchants.List(ctx)
}

// ChangeStatus enables or disables a merchant.
func (s *MerchantService) ChangeStatus(ctx context.Context, id int64, status domain.MerchantStatus) error {
	switch status {
	case domain.MerchantStatusActive, domain.MerchantStatusInactive:
	default:
		return apperrors.NewValidationError("unknown merchant status", map[string]any{"status": status})
	}

	if err := s.merchants.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("merchant", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
