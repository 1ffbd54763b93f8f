package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/events"
	"github.com/spec-kit/venue-service/internal/repository"
	apperrors "github.com/spec-kit/venue-service/pkg/util"
)

// ReservationService manages venue bookings.
type ReservationService struct {
	reservations repository.ReservationRepository
	venues       repository.VenueRepository
	dispatcher   events.Dispatcher
}

// NewReservationService builds the service.
func NewReservationService(
	reservations repository.ReservationRepository,
	venues repository.VenueRepository,
	dispatcher events.Dispatcher,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		venues:       venues,
		dispatcher:   dispatcher,
	}
}

// ReservationCreateInput carries booking fields.
type ReservationCreateInput struct {
	VenueID     int64
	StartTime   time.Time
	EndTime     time.Time
	PeopleCount int
	UnitPrice   float64
}

// Create books a venue for the caller. The venue must be ACTIVE and the
// window must lie in the future with a positive duration.
func (s *ReservationService) Create(ctx context.Context, user *domain.User, input ReservationCreateInput) (*domain.Reservation, error) {
	if !input.EndTime.After(input.StartTime) {
		return nil, apperrors.NewValidationError("end time must be after start time", nil)
	}
	if input.StartTime.Before(time.Now()) {
		return nil, apperrors.NewValidationError("reservation window is in the past", nil)
	}
	if input.PeopleCount < 1 {
		input.PeopleCount = 1
	}

	venue, err := s.venues.GetByID(ctx, input.VenueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("venue", map[string]any{"id": input.VenueID})
		}
		return nil, err
	}
	if venue.Status != domain.VenueStatusActive {
		return nil, apperrors.NewValidationError("venue is not accepting reservations", map[string]any{"status": venue.Status})
	}

	hours := input.EndTime.Sub(input.StartTime).Hours()
	reservation := &domain.Reservation{
		ReservationNo: newReservationNo(),
		VenueID:       venue.ID,
		UserID:        user.ID,
		UserName:      user.RealName,
		UserPhone:     user.Phone,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		PeopleCount:   input.PeopleCount,
		Status:        domain.ReservationStatusPending,
		UnitPrice:     input.UnitPrice,
		TotalPrice:    input.UnitPrice * hours,
		PaymentStatus: domain.PaymentStatusUnpaid,
	}
	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventReservationCreated,
		VenueID:   venue.ID,
		Timestamp: time.Now(),
		Payload: events.ReservationCreatedPayload{
			ReservationID: reservation.ID,
			ReservationNo: reservation.ReservationNo,
			UserID:        user.ID,
			StartTime:     reservation.StartTime,
			EndTime:       reservation.EndTime,
		},
	})

	return reservation, nil
}

// Get loads a reservation.
func (s *ReservationService) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("reservation", map[string]any{"id": id})
		}
		return nil, err
	}
	return reservation, nil
}

// ListByUser returns all bookings made by an account.
func (s *ReservationService) ListByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	return s.reservations.ListByUser(ctx, userID)
}

// ListByVenue returns all bookings at a venue, for the merchant view.
func (s *ReservationService) ListByVenue(ctx context.Context, venueID int64) ([]*domain.Reservation, error) {
	return s.reservations.ListByVenue(ctx, venueID)
}

// Confirm moves a PENDING reservation to CONFIRMED.
func (s *ReservationService) Confirm(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.ReservationStatusConfirmed)
}

// Cancel moves a PENDING or CONFIRMED reservation to CANCELLED. Only the
// booking owner or an elevated caller may cancel; the handler enforces that.
func (s *ReservationService) Cancel(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.ReservationStatusCancelled)
}

// Complete moves a CONFIRMED reservation to COMPLETED.
func (s *ReservationService) Complete(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.ReservationStatusCompleted)
}

func (s *ReservationService) transition(ctx context.Context, id int64, target domain.ReservationStatus) (*domain.Reservation, error) {
	reservation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reservation.Status.CanTransitionTo(target) {
		return nil, apperrors.NewConflict("illegal reservation transition", map[string]any{
			"from": reservation.Status,
			"to":   target,
		})
	}

	if err := s.reservations.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventReservationStatusChanged,
		VenueID:   reservation.VenueID,
		Timestamp: time.Now(),
		Payload: events.ReservationStatusChangedPayload{
			ReservationID: reservation.ID,
			OldStatus:     reservation.Status,
			NewStatus:     target,
		},
	})

	reservation.Status = target
	return reservation, nil
}

func newReservationNo() string {
	return fmt.Sprintf("RES-%s", uuid.NewString()[:18])
}
