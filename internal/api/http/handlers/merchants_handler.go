package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/venue-service/internal/api/dto"
	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/service"
	apperrors "github.com/spec-kit/venue-service/pkg/util"
)

// MerchantsHandler exposes merchant administration endpoints.
type MerchantsHandler struct {
	merchants *service.MerchantService
}

// NewMerchantsHandler constructs handler.
func NewMerchantsHandler(merchantService *service.MerchantService) *MerchantsHandler {
	return &MerchantsHandler{merchants: merchantService}
}

// List handles GET /merchants.
func (h *MerchantsHandler) List(c *fiber.Ctx) error {
	merchants, err := h.merchants.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(merchants))
	for _, merchant := range merchants {
		items = append(items, merchantView(merchant))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /merchants/:id.
func (h *MerchantsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	merchant, err := h.merchants.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": merchantView(merchant)})
}

// Create handles POST /merchants.
func (h *MerchantsHandler) Create(c *fiber.Ctx) error {
	var req dto.MerchantCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Code == "" || req.Name == "" {
		return apperrors.NewValidationError("code and name required", nil)
	}

	merchant, err := h.merchants.Create(c.Context(), service.MerchantCreateInput{
		Code:         req.Code,
		Name:         req.Name,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": merchantView(merchant)})
}

// ChangeStatus handles PUT /merchants/:id/status.
func (h *MerchantsHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.MerchantStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.merchants.ChangeStatus(c.Context(), id, domain.MerchantStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id, "status": req.Status}})
}

func merchantView(merchant *domain.Merchant) fiber.Map {
	return fiber.Map{
		"id":            merchant.ID,
		"code":          merchant.Code,
		"name":          merchant.Name,
		"contact_name":  merchant.ContactName,
		"contact_phone": merchant.ContactPhone,
		"address":       merchant.Address,
		"status":        merchant.Status,
	}
}
