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

// ReservationsHandler exposes booking endpoints.
type ReservationsHandler struct {
	reservations *service.ReservationService
}

// NewReservationsHandler constructs handler.
func NewReservationsHandler(reservationService *service.ReservationService) *ReservationsHandler {
	return &ReservationsHandler{reservations: reservationService}
}

// Create handles POST /reservations.
func (h *ReservationsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewAccessDenied()
	}
	var req dto.ReservationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.VenueID == 0 || req.StartTime.IsZero() || req.EndTime.IsZero() {
		return apperrors.NewValidationError("venue_id, start_time, end_time required", nil)
	}

	reservation, err := h.reservations.Create(c.Context(), principal.User, service.ReservationCreateInput{
		VenueID:     req.VenueID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		PeopleCount: req.PeopleCount,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": reservationView(reservation)})
}

// Get handles GET /reservations/:id. Owners see their own bookings;
// elevated callers see all.
func (h *ReservationsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewAccessDenied()
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	reservation, err := h.reservations.Get(c.Context(), id)
	if err != nil {
		return err
	}
	if !canManageReservation(principal, reservation) {
		return apperrors.NewAccessDenied()
	}
	return c.JSON(fiber.Map{"data": reservationView(reservation)})
}

// ListMine handles GET /reservations.
func (h *ReservationsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewAccessDenied()
	}
	reservations, err := h.reservations.ListByUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reservationViews(reservations)})
}

// ListByVenue handles GET /venues/:id/reservations, the merchant view.
func (h *ReservationsHandler) ListByVenue(c *fiber.Ctx) error {
	venueID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	reservations, err := h.reservations.ListByVenue(c.Context(), venueID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reservationViews(reservations)})
}

// Confirm handles PUT /reservations/:id/confirm.
func (h *ReservationsHandler) Confirm(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	reservation, err := h.reservations.Confirm(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reservationView(reservation)})
}

// Cancel handles PUT /reservations/:id/cancel.
func (h *ReservationsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewAccessDenied()
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	reservation, err := h.reservations.Get(c.Context(), id)
	if err != nil {
		return err
	}
	if !canManageReservation(principal, reservation) {
		return apperrors.NewAccessDenied()
	}

	cancelled, err := h.reservations.Cancel(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reservationView(cancelled)})
}

// Complete handles PUT /reservations/:id/complete.
func (h *ReservationsHandler) Complete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	reservation, err := h.reservations.Complete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reservationView(reservation)})
}

func canManageReservation(principal *auth.Principal, reservation *domain.Reservation) bool {
	if reservation.UserID == principal.User.ID {
		return true
	}
	return auth.HasAuthority(principal.Authorities, "ROLE_ADMIN") ||
		auth.HasAuthority(principal.Authorities, "ROLE_MERCHANT")
}

func reservationView(reservation *domain.Reservation) fiber.Map {
	return fiber.Map{
		"id":             reservation.ID,
		"reservation_no": reservation.ReservationNo,
		"venue_id":       reservation.VenueID,
		"user_id":        reservation.UserID,
		"user_name":      reservation.UserName,
		"start_time":     reservation.StartTime,
		"end_time":       reservation.EndTime,
		"people_count":   reservation.PeopleCount,
		"status":         reservation.Status,
		"unit_price":     reservation.UnitPrice,
		"total_price":    reservation.TotalPrice,
		"payment_status": reservation.PaymentStatus,
	}
}

func reservationViews(reservations []*domain.Reservation) []fiber.Map {
	views := make([]fiber.Map, 0, len(reservations))
	for _, reservation := range reservations {
		views = append(views, reservationView(reservation))
	}
	return views
}
