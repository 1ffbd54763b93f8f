package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/venue-service/internal/config"
	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/events"
	"github.com/spec-kit/venue-service/internal/repository"
	apperrors "github.com/spec-kit/venue-service/pkg/util"
)

// CheckInService records venue entries and exits, keeps the occupancy count
// in step, and awards loyalty points on entry.
type CheckInService struct {
	checkIns     repository.CheckInRepository
	reservations repository.ReservationRepository
	users        repository.UserRepository
	venues       *VenueService
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	cfg          config.CheckInConfig
}

// NewCheckInService builds the service.
func NewCheckInService(
	checkIns repository.CheckInRepository,
	reservations repository.ReservationRepository,
	users repository.UserRepository,
	venues *VenueService,
	dispatcher events.Dispatcher,
	cfg config.CheckInConfig,
	logger *zap.Logger,
) *CheckInService {
	return &CheckInService{
		checkIns:     checkIns,
		reservations: reservations,
		users:        users,
		venues:       venues,
		dispatcher:   dispatcher,
		logger:       logger,
		cfg:          cfg,
	}
}

// CheckInInput carries entry fields.
type CheckInInput struct {
	VenueID       int64
	ReservationID *int64
	Method        domain.CheckInMethod
}

// CheckIn records an entry for the caller. A second entry without an
// intervening exit is rejected. When a reservation is referenced it must
// belong to the caller and be CONFIRMED.
func (s *CheckInService) CheckIn(ctx context.Context, user *domain.User, input CheckInInput) (*domain.CheckIn, error) {
	venue, err := s.venues.Get(ctx, input.VenueID)
	if err != nil {
		return nil, err
	}
	if venue.Status != domain.VenueStatusActive {
		return nil, apperrors.NewValidationError("venue is not open for check-in", map[string]any{"status": venue.Status})
	}

	if _, err := s.checkIns.FindOpenVisit(ctx, venue.ID, user.ID); err == nil {
		return nil, apperrors.NewConflict("already checked in", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if input.ReservationID != nil {
		reservation, err := s.reservations.GetByID(ctx, *input.ReservationID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("reservation", map[string]any{"id": *input.ReservationID})
			}
			return nil, err
		}
		if reservation.UserID != user.ID || reservation.VenueID != venue.ID {
			return nil, apperrors.NewValidationError("reservation does not match caller and venue", nil)
		}
		if reservation.Status != domain.ReservationStatusConfirmed {
			return nil, apperrors.NewValidationError("reservation is not confirmed", map[string]any{"status": reservation.Status})
		}
	}

	method := input.Method
	if method == "" {
		method = domain.CheckInMethodQRCode
	}

	checkIn := &domain.CheckIn{
		CheckInNo:     newCheckInNo(),
		VenueID:       venue.ID,
		UserID:        user.ID,
		UserName:      user.RealName,
		ReservationID: input.ReservationID,
		Type:          domain.CheckInTypeIn,
		Method:        method,
		EarnedPoints:  s.cfg.PointsPerCheckIn,
		OccurredAt:    time.Now(),
	}
	if err := s.checkIns.Create(ctx, checkIn); err != nil {
		return nil, err
	}

	if _, err := s.venues.AdjustOccupancy(ctx, venue.ID, 1); err != nil {
		s.logger.Error("occupancy increment failed", zap.Int64("venue_id", venue.ID), zap.Error(err))
	}
	if checkIn.EarnedPoints > 0 {
		if err := s.users.AddPoints(ctx, user.ID, checkIn.EarnedPoints); err != nil {
			s.logger.Warn("points award failed", zap.Int64("user_id", user.ID), zap.Error(err))
		}
	}

	s.publish(ctx, events.EventCheckIn, checkIn)
	return checkIn, nil
}

// CheckOut records an exit for the caller's open visit.
func (s *CheckInService) CheckOut(ctx context.Context, user *domain.User, venueID int64) (*domain.CheckIn, error) {
	if _, err := s.checkIns.FindOpenVisit(ctx, venueID, user.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("no open visit to check out of", nil)
		}
		return nil, err
	}

	checkOut := &domain.CheckIn{
		CheckInNo:  newCheckInNo(),
		VenueID:    venueID,
		UserID:     user.ID,
		UserName:   user.RealName,
		Type:       domain.CheckInTypeOut,
		Method:     domain.CheckInMethodManual,
		OccurredAt: time.Now(),
	}
	if err := s.checkIns.Create(ctx, checkOut); err != nil {
		return nil, err
	}

	if _, err := s.venues.AdjustOccupancy(ctx, venueID, -1); err != nil {
		s.logger.Error("occupancy decrement failed", zap.Int64("venue_id", venueID), zap.Error(err))
	}

	s.publish(ctx, events.EventCheckOut, checkOut)
	return checkOut, nil
}

// AutoCheckOut force-closes an open visit that exceeded the session limit.
// Called by the sweep worker, not by request handlers.
func (s *CheckInService) AutoCheckOut(ctx context.Context, visit *repository.OpenVisit) error {
	checkOut := &domain.CheckIn{
		CheckInNo:  newCheckInNo(),
		VenueID:    visit.VenueID,
		UserID:     visit.UserID,
		UserName:   visit.UserName,
		Type:       domain.CheckInTypeAutoOut,
		Method:     domain.CheckInMethodAuto,
		OccurredAt: time.Now(),
	}
	if err := s.checkIns.Create(ctx, checkOut); err != nil {
		return err
	}

	if _, err := s.venues.AdjustOccupancy(ctx, visit.VenueID, -1); err != nil {
		s.logger.Error("occupancy decrement failed", zap.Int64("venue_id", visit.VenueID), zap.Error(err))
	}

	s.publish(ctx, events.EventCheckOut, checkOut)
	return nil
}

// StaleOpenVisits lists visits open longer than the configured session limit.
func (s *CheckInService) StaleOpenVisits(ctx context.Context) ([]*repository.OpenVisit, error) {
	cutoff := time.Now().Add(-s.cfg.MaxSession())
	return s.checkIns.ListStaleOpenVisits(ctx, cutoff)
}

// ListByVenue returns recent records at a venue.
func (s *CheckInService) ListByVenue(ctx context.Context, venueID int64, limit int) ([]*domain.CheckIn, error) {
	return s.checkIns.ListByVenue(ctx, venueID, limit)
}

// ListByUser returns the caller's recent records.
func (s *CheckInService) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.CheckIn, error) {
	return s.checkIns.ListByUser(ctx, userID, limit)
}

func (s *CheckInService) publish(ctx context.Context, eventType events.EventType, checkIn *domain.CheckIn) {
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		VenueID:   checkIn.VenueID,
		Timestamp: time.Now(),
		Payload: events.CheckInPayload{
			CheckInID:    checkIn.ID,
			CheckInNo:    checkIn.CheckInNo,
			UserID:       checkIn.UserID,
			Type:         checkIn.Type,
			EarnedPoints: checkIn.EarnedPoints,
		},
	})
}

func newCheckInNo() string {
	return fmt.Sprintf("CHK-%s", uuid.NewString()[:18])
}
