package domain

import "time"

// ReservationStatus enumerates reservation lifecycle states.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
)

// CanTransitionTo reports whether moving to the target status is a legal
// lifecycle step. Cancellation is allowed from PENDING and CONFIRMED;
// completion only from CONFIRMED. Terminal states accept nothing.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	switch s {
	case ReservationStatusPending:
		return target == ReservationStatusConfirmed || target == ReservationStatusCancelled
	case ReservationStatusConfirmed:
		return target == ReservationStatusCompleted || target == ReservationStatusCancelled
	default:
		return false
	}
}

// PaymentStatus enumerates payment lifecycle states for a reservation.
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "UNPAID"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Reservation is a booking of a venue for a time window.
type Reservation struct {
	ID            int64
	ReservationNo string
	VenueID       int64
	UserID        int64
	UserName      string
	UserPhone     string
	StartTime     time.Time
	EndTime       time.Time
	PeopleCount   int
	Status        ReservationStatus
	UnitPrice     float64
	TotalPrice    float64
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
