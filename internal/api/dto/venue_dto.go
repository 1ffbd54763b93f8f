package dto

// VenueCreateRequest payload for new venues.
type VenueCreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	SubType     string   `json:"sub_type"`
	MerchantID  int64    `json:"merchant_id"`
	Address     string   `json:"address"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
	Phone       string   `json:"phone"`
	OpenTime    string   `json:"open_time"`
	CloseTime   string   `json:"close_time"`
	Capacity    int      `json:"capacity"`
}

// VenueUpdateRequest payload for venue patches. Nil fields are untouched.
type VenueUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	OpenTime    *string `json:"open_time"`
	CloseTime   *string `json:"close_time"`
	Capacity    *int    `json:"capacity"`
}

// VenueStatusRequest payload for status changes.
type VenueStatusRequest struct {
	Status string `json:"status"`
}

// VenueOccupancyRequest payload for manual occupancy correction.
type VenueOccupancyRequest struct {
	Occupancy int `json:"occupancy"`
}
