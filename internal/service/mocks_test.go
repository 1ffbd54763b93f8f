package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/events"
	"github.com/spec-kit/venue-service/internal/repository"
)

type mockReservationRepository struct {
	mock.Mock
}

func (m *mockReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}

func (m *mockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepository) GetByNo(ctx context.Context, reservationNo string) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepository) ListByVenue(ctx context.Context, venueID int64) ([]*domain.Reservation, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockReservationRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockReservationRepository) CountActiveForWindow(ctx context.Context, venueID int64, start, end time.Time) (int64, error) {
	args := m.Called(ctx, venueID, start, end)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockUserRepository) UpdateLastLogin(ctx context.Context, id int64, ip string) error {
	return m.Called(ctx, id, ip).Error(0)
}

func (m *mockUserRepository) AddPoints(ctx context.Context, id int64, points int) error {
	return m.Called(ctx, id, points).Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, filter repository.UserFilter) ([]*domain.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) AssignRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	return m.Called(ctx, userID, roleIDs).Error(0)
}

type mockVenueRepository struct {
	mock.Mock
}

func (m *mockVenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	return m.Called(ctx, venue).Error(0)
}

func (m *mockVenueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	return m.Called(ctx, venue).Error(0)
}

func (m *mockVenueRepository) UpdateStatus(ctx context.Context, id int64, status domain.VenueStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockVenueRepository) UpdateOccupancy(ctx context.Context, id int64, occupancy int) error {
	return m.Called(ctx, id, occupancy).Error(0)
}

func (m *mockVenueRepository) AdjustOccupancy(ctx context.Context, id int64, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

func (m *mockVenueRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockVenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

func (m *mockVenueRepository) List(ctx context.Context, filter repository.VenueFilter) ([]*domain.Venue, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Venue), args.Get(1).(int64), args.Error(2)
}

func (m *mockVenueRepository) ListPopular(ctx context.Context, limit int) ([]*domain.Venue, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Venue), args.Error(1)
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
