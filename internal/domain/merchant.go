package domain

import "time"

// MerchantStatus represents lifecycle states for a merchant account.
type MerchantStatus string

const (
	MerchantStatusActive   MerchantStatus = "ACTIVE"
	MerchantStatusInactive MerchantStatus = "INACTIVE"
)

// Merchant is a business entity operating one or more venues.
type Merchant struct {
	ID           int64
	Code         string
	Name         string
	ContactName  string
	ContactPhone string
	Address      string
	Status       MerchantStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
