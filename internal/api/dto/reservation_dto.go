package dto

import "time"

// ReservationCreateRequest payload for new bookings.
type ReservationCreateRequest struct {
	VenueID     int64     `json:"venue_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	PeopleCount int       `json:"people_count"`
	UnitPrice   float64   `json:"unit_price"`
}

// CheckInRequest payload for venue entry.
type CheckInRequest struct {
	VenueID       int64  `json:"venue_id"`
	ReservationID *int64 `json:"reservation_id"`
	Method        string `json:"method"`
}

// CheckOutRequest payload for venue exit.
type CheckOutRequest struct {
	VenueID int64 `json:"venue_id"`
}

// MerchantCreateRequest payload for new merchants.
type MerchantCreateRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
}

// MerchantStatusRequest payload for status changes.
type MerchantStatusRequest struct {
	Status string `json:"status"`
}
