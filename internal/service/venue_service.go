package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/events"
	"github.com/spec-kit/venue-service/internal/persistence"
	"github.com/spec-kit/venue-service/internal/repository"
	apperrors "github.com/spec-kit/venue-service/pkg/util"
)

// VenueRealtimeInfo is the live view of a venue.
type VenueRealtimeInfo struct {
	VenueID   int64 `json:"venue_id"`
	Current   int   `json:"current"`
	Predicted int   `json:"predicted"`
	Capacity  int   `json:"capacity"`
}

// VenueService manages venues and their live occupancy.
type VenueService struct {
	venues     repository.VenueRepository
	merchants  repository.MerchantRepository
	cache      *persistence.OccupancyCache
	prediction *PredictionService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewVenueService builds the service.
func NewVenueService(
	venues repository.VenueRepository,
	merchants repository.MerchantRepository,
	cache *persistence.OccupancyCache,
	prediction *PredictionService,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *VenueService {
	return &VenueService{
		venues:     venues,
		merchants:  merchants,
		cache:      cache,
		prediction: prediction,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// VenueCreateInput carries new-venue fields.
type VenueCreateInput struct {
	Name        string
	Description string
	Type        domain.VenueType
	SubType     domain.VenueSubType
	MerchantID  int64
	Address     string
	Longitude   *float64
	Latitude    *float64
	Phone       string
	OpenTime    string
	CloseTime   string
	Capacity    int
}

// Create registers a venue under an active merchant.
func (s *VenueService) Create(ctx context.Context, input VenueCreateInput) (*domain.Venue, error) {
	merchant, err := s.merchants.GetByID(ctx, input.MerchantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown merchant", map[string]any{"merchant_id": input.MerchantID})
		}
		return nil, err
	}
	if merchant.Status != domain.MerchantStatusActive {
		return nil, apperrors.NewValidationError("merchant is not active", map[string]any{"merchant_id": merchant.ID})
	}

	venue := &domain.Venue{
		Name:         input.Name,
		Description:  input.Description,
		Type:         input.Type,
		SubType:      input.SubType,
		MerchantID:   merchant.ID,
		MerchantName: merchant.Name,
		Address:      input.Address,
		Longitude:    input.Longitude,
		Latitude:     input.Latitude,
		Phone:        input.Phone,
		OpenTime:     input.OpenTime,
		CloseTime:    input.CloseTime,
		Status:       domain.VenueStatusActive,
		Capacity:     input.Capacity,
	}
	if err := s.venues.Create(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

// Get loads a venue.
func (s *VenueService) Get(ctx context.Context, id int64) (*domain.Venue, error) {
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("venue", map[string]any{"id": id})
		}
		return nil, err
	}
	return venue, nil
}

// List returns a filtered page of venues plus a total count.
func (s *VenueService) List(ctx context.Context, filter repository.VenueFilter) ([]*domain.Venue, int64, error) {
	return s.venues.List(ctx, filter)
}

// ListPopular returns the highest-rated active venues.
func (s *VenueService) ListPopular(ctx context.Context, limit int) ([]*domain.Venue, error) {
	return s.venues.ListPopular(ctx, limit)
}

// VenueUpdateInput carries mutable venue fields.
type VenueUpdateInput struct {
	Name        *string
	Description *string
	Address     *string
	Phone       *string
	OpenTime    *string
	CloseTime   *string
	Capacity    *int
}

// Update patches a venue's profile fields.
func (s *VenueService) Update(ctx context.Context, id int64, input VenueUpdateInput) (*domain.Venue, error) {
	venue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		venue.Name = *input.Name
	}
	if input.Description != nil {
		venue.Description = *input.Description
	}
	if input.Address != nil {
		venue.Address = *input.Address
	}
	if input.Phone != nil {
		venue.Phone = *input.Phone
	}
	if input.OpenTime != nil {
		venue.OpenTime = *input.OpenTime
	}
	if input.CloseTime != nil {
		venue.CloseTime = *input.CloseTime
	}
	if input.Capacity != nil {
		venue.Capacity = *input.Capacity
	}

	if err := s.venues.Update(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

// Delete removes a venue.
func (s *VenueService) Delete(ctx context.Context, id int64) error {
	if err := s.venues.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("venue", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// ChangeStatus moves a venue between ACTIVE, INACTIVE, and MAINTENANCE.
func (s *VenueService) ChangeStatus(ctx context.Context, id int64, status domain.VenueStatus) error {
	switch status {
	case domain.VenueStatusActive, domain.VenueStatusInactive, domain.VenueStatusMaintenance:
	default:
		return apperrors.NewValidationError("unknown venue status", map[string]any{"status": status})
	}

	if err := s.venues.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("venue", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// SetOccupancy overwrites the occupancy count, for manual correction by
// venue staff. The change is cached and broadcast like any other.
func (s *VenueService) SetOccupancy(ctx context.Context, id int64, occupancy int) error {
	if occupancy < 0 {
		return apperrors.NewValidationError("occupancy cannot be negative", nil)
	}
	venue, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.venues.UpdateOccupancy(ctx, id, occupancy); err != nil {
		return err
	}
	s.publishOccupancy(ctx, venue, occupancy)
	return nil
}

// AdjustOccupancy applies a delta (check-in +1, check-out -1) and returns
// the new count. The result never dips below zero.
func (s *VenueService) AdjustOccupancy(ctx context.Context, id int64, delta int) (int, error) {
	venue, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	occupancy, err := s.venues.AdjustOccupancy(ctx, id, delta)
	if err != nil {
		return 0, err
	}
	s.publishOccupancy(ctx, venue, occupancy)
	return occupancy, nil
}

// RealtimeInfo returns the live occupancy and the short-horizon prediction.
// The cache is preferred; the database row is the fallback.
func (s *VenueService) RealtimeInfo(ctx context.Context, id int64) (*VenueRealtimeInfo, error) {
	venue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	current := venue.CurrentOccupancy
	if cached, ok := s.cache.Get(ctx, id); ok {
		current = cached
	}

	return &VenueRealtimeInfo{
		VenueID:   id,
		Current:   current,
		Predicted: s.prediction.PredictOccupancy(ctx, id, current, venue.Capacity),
		Capacity:  venue.Capacity,
	}, nil
}

func (s *VenueService) publishOccupancy(ctx context.Context, venue *domain.Venue, occupancy int) {
	if err := s.cache.Set(ctx, venue.ID, occupancy); err != nil {
		s.logger.Warn("occupancy cache update failed", zap.Int64("venue_id", venue.ID), zap.Error(err))
	}

	predicted := s.prediction.PredictOccupancy(ctx, venue.ID, occupancy, venue.Capacity)
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOccupancyChanged,
		VenueID:   venue.ID,
		Timestamp: time.Now(),
		Payload: events.OccupancyChangedPayload{
			Current:   occupancy,
			Predicted: predicted,
		},
	})
}
