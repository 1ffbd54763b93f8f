package events

import (
	"time"

	"github.com/spec-kit/venue-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOccupancyChanged         EventType = "occupancy_changed"
	EventReservationCreated       EventType = "reservation_created"
	EventReservationStatusChanged EventType = "reservation_status_changed"
	EventCheckIn                  EventType = "check_in"
	EventCheckOut                 EventType = "check_out"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	VenueID   int64       `json:"venue_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OccupancyChangedPayload payload.
type OccupancyChangedPayload struct {
	Current   int `json:"current"`
	Predicted int `json:"predicted"`
}

// ReservationCreatedPayload payload.
type ReservationCreatedPayload struct {
	ReservationID int64     `json:"reservation_id"`
	ReservationNo string    `json:"reservation_no"`
	UserID        int64     `json:"user_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

// ReservationStatusChangedPayload payload.
type ReservationStatusChangedPayload struct {
	ReservationID int64                    `json:"reservation_id"`
	OldStatus     domain.ReservationStatus `json:"old_status"`
	NewStatus     domain.ReservationStatus `json:"new_status"`
}

// CheckInPayload payload for both check-in and check-out events.
type CheckInPayload struct {
	CheckInID    int64              `json:"check_in_id"`
	CheckInNo    string             `json:"check_in_no"`
	UserID       int64              `json:"user_id"`
	Type         domain.CheckInType `json:"type"`
	EarnedPoints int                `json:"earned_points"`
}
