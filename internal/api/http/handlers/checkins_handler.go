package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/venue-service/internal/api/dto"
	"github.com/spec-kit/venue-service/internal/auth"
	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/service"
	apperrors "github.com/spec-kit/venue-service/pkg/util"
)

// CheckInsHandler exposes venue entry and exit endpoints.
type CheckInsHandler struct {
	checkIns *service.CheckInService
}

// NewCheckInsHandler constructs handler.
func NewCheckInsHandler(checkInService *service.CheckInService) *CheckInsHandler {
	return &CheckInsHandler{checkIns: checkInService}
}

// CheckIn handles POST /checkins.
func (h *CheckInsHandler) CheckIn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewAccessDenied()
	}
	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.VenueID == 0 {
		return apperrors.NewValidationError("venue_id required", nil)
	}

	checkIn, err := h.checkIns.CheckIn(c.Context(), principal.User, service.CheckInInput{
		VenueID:       req.VenueID,
		ReservationID: req.ReservationID,
		Method:        domain.CheckInMethod(req.Method),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": checkInView(checkIn)})
}

// CheckOut handles POST /checkins/checkout.
func (h *CheckInsHandler) CheckOut(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewAccessDenied()
	}
	var req dto.CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.VenueID == 0 {
		return apperrors.NewValidationError("venue_id required", nil)
	}

	checkOut, err := h.checkIns.CheckOut(c.Context(), principal.User, req.VenueID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": checkInView(checkOut)})
}

// ListMine handles GET /checkins.
func (h *CheckInsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewAccessDenied()
	}
	records, err := h.checkIns.ListByUser(c.Context(), principal.User.ID, c.QueryInt("limit", 50))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": checkInViews(records)})
}

// ListByVenue handles GET /venues/:id/checkins, the merchant view.
func (h *CheckInsHandler) ListByVenue(c *fiber.Ctx) error {
	venueID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	records, err := h.checkIns.ListByVenue(c.Context(), venueID, c.QueryInt("limit", 50))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": checkInViews(records)})
}

func checkInView(checkIn *domain.CheckIn) fiber.Map {
	return fiber.Map{
		"id":             checkIn.ID,
		"check_in_no":    checkIn.CheckInNo,
		"venue_id":       checkIn.VenueID,
		"user_id":        checkIn.UserID,
		"user_name":      checkIn.UserName,
		"reservation_id": checkIn.ReservationID,
		"type":           checkIn.Type,
		"method":         checkIn.Method,
		"earned_points":  checkIn.EarnedPoints,
		"occurred_at":    checkIn.OccurredAt,
	}
}

func checkInViews(records []*domain.CheckIn) []fiber.Map {
	views := make([]fiber.Map, 0, len(records))
	for _, record := range records {
		views = append(views, checkInView(record))
	}
	return views
}
