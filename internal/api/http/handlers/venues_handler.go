package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/venue-service/internal/api/dto"
	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/repository"
	"github.com/spec-kit/venue-service/internal/service"
	apperrors "github.com/spec-kit/venue-service/pkg/util"
)

// VenuesHandler exposes venue endpoints.
type VenuesHandler struct {
	venues *service.VenueService
}

// NewVenuesHandler constructs handler.
func NewVenuesHandler(venueService *service.VenueService) *VenuesHandler {
	return &VenuesHandler{venues: venueService}
}

// List handles GET /venues.
func (h *VenuesHandler) List(c *fiber.Ctx) error {
	filter := repository.VenueFilter{
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
	if raw := c.Query("merchant_id"); raw != "" {
		if merchantID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.MerchantID = &merchantID
		}
	}
	if raw := c.Query("type"); raw != "" {
		venueType := domain.VenueType(raw)
		filter.Type = &venueType
	}
	if raw := c.Query("sub_type"); raw != "" {
		subType := domain.VenueSubType(raw)
		filter.SubType = &subType
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.VenueStatus(raw)
		filter.Status = &status
	}

	venues, total, err := h.venues.List(c.Context(), filter)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(venues))
	for _, venue := range venues {
		items = append(items, venueView(venue))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"items": items,
		"total": total,
		"page":  filter.Page,
	}})
}

// Popular handles GET /venues/popular.
func (h *VenuesHandler) Popular(c *fiber.Ctx) error {
	venues, err := h.venues.ListPopular(c.Context(), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(venues))
	for _, venue := range venues {
		items = append(items, venueView(venue))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /venues/:id.
func (h *VenuesHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	venue, err := h.venues.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": venueView(venue)})
}

// Realtime handles GET /venues/:id/realtime.
func (h *VenuesHandler) Realtime(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	info, err := h.venues.RealtimeInfo(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": info})
}

// Create handles POST /venues.
func (h *VenuesHandler) Create(c *fiber.Ctx) error {
	var req dto.VenueCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.MerchantID == 0 || req.Address == "" {
		return apperrors.NewValidationError("name, merchant_id, address required", nil)
	}

	venue, err := h.venues.Create(c.Context(), service.VenueCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        domain.VenueType(req.Type),
		SubType:     domain.VenueSubType(req.SubType),
		MerchantID:  req.MerchantID,
		Address:     req.Address,
		Longitude:   req.Longitude,
		Latitude:    req.Latitude,
		Phone:       req.Phone,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": venueView(venue)})
}

// Update handles PATCH /venues/:id.
func (h *VenuesHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.VenueUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	venue, err := h.venues.Update(c.Context(), id, service.VenueUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": venueView(venue)})
}

// Delete handles DELETE /venues/:id.
func (h *VenuesHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.venues.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ChangeStatus handles PUT /venues/:id/status.
func (h *VenuesHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.VenueStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.venues.ChangeStatus(c.Context(), id, domain.VenueStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id, "status": req.Status}})
}

// SetOccupancy handles PUT /venues/:id/occupancy.
func (h *VenuesHandler) SetOccupancy(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.VenueOccupancyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.venues.SetOccupancy(c.Context(), id, req.Occupancy); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id, "occupancy": req.Occupancy}})
}

func venueView(venue *domain.Venue) fiber.Map {
	return fiber.Map{
		"id":                venue.ID,
		"name":              venue.Name,
		"description":       venue.Description,
		"type":              venue.Type,
		"sub_type":          venue.SubType,
		"merchant_id":       venue.MerchantID,
		"merchant_name":     venue.MerchantName,
		"address":           venue.Address,
		"longitude":         venue.Longitude,
		"latitude":          venue.Latitude,
		"phone":             venue.Phone,
		"open_time":         venue.OpenTime,
		"close_time":        venue.CloseTime,
		"status":            venue.Status,
		"capacity":          venue.Capacity,
		"current_occupancy": venue.CurrentOccupancy,
		"rating":            venue.Rating,
		"rating_count":      venue.RatingCount,
	}
}
