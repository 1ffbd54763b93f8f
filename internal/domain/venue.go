package domain

import "time"

// VenueType enumerates top-level venue categories.
type VenueType string

const (
	VenueTypeIndoor      VenueType = "INDOOR"
	VenueTypeOutdoor     VenueType = "OUTDOOR"
	VenueTypePark        VenueType = "PARK"
	VenueTypeInstitution VenueType = "INSTITUTION"
)

// VenueSubType enumerates the sport hosted by a venue.
type VenueSubType string

const (
	VenueSubTypeBasketball VenueSubType = "BASKETBALL"
	VenueSubTypeFootball   VenueSubType = "FOOTBALL"
	VenueSubTypeTennis     VenueSubType = "TENNIS"
	VenueSubTypeSwimming   VenueSubType = "SWIMMING"
	VenueSubTypeBadminton  VenueSubType = "BADMINTON"
	VenueSubTypeGym        VenueSubType = "GYM"
)

// VenueStatus enumerates operational states for a venue.
type VenueStatus string

const (
	VenueStatusActive      VenueStatus = "ACTIVE"
	VenueStatusInactive    VenueStatus = "INACTIVE"
	VenueStatusMaintenance VenueStatus = "MAINTENANCE"
)

// Venue is the aggregate for a bookable sports facility.
type Venue struct {
	ID               int64
	Name             string
	Description      string
	Type             VenueType
	SubType          VenueSubType
	MerchantID       int64
	MerchantName     string
	Address          string
	Longitude        *float64
	Latitude         *float64
	Phone            string
	OpenTime         string
	CloseTime        string
	Status           VenueStatus
	Capacity         int
	CurrentOccupancy int
	Rating           float64
	RatingCount      int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
