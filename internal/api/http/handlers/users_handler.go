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

// UsersHandler exposes administrative account management endpoints.
type UsersHandler struct {
	users *service.UserService
	roles *service.RoleService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, roleService *service.RoleService) *UsersHandler {
	return &UsersHandler{users: userService, roles: roleService}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	filter := repository.UserFilter{
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
	if raw := c.Query("user_type"); raw != "" {
		if userType, ok := domain.ParseUserType(raw); ok {
			filter.UserType = &userType
		}
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.UserStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("merchant_id"); raw != "" {
		if merchantID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.MerchantID = &merchantID
		}
	}

	users, total, err := h.users.List(c.Context(), filter)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		items = append(items, userDetail(user))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"items": items,
		"total": total,
		"page":  filter.Page,
	}})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userDetail(user)})
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" || req.UserType == "" {
		return apperrors.NewValidationError("username, password, user_type required", nil)
	}

	user, err := h.users.Create(c.Context(), service.UserCreateInput{
		Username:   req.Username,
		Password:   req.Password,
		RealName:   req.RealName,
		Phone:      req.Phone,
		Email:      req.Email,
		UserType:   req.UserType,
		MerchantID: req.MerchantID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userDetail(user)})
}

// Update handles PATCH /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.Update(c.Context(), id, service.UserUpdateInput{
		RealName: req.RealName,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userDetail(user)})
}

// ChangeStatus handles PUT /users/:id/status.
func (h *UsersHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.users.ChangeStatus(c.Context(), id, domain.UserStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id, "status": req.Status}})
}

// AssignRoles handles PUT /users/:id/roles.
func (h *UsersHandler) AssignRoles(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AssignRolesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.users.AssignRoles(c.Context(), id, req.RoleIDs); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id, "role_ids": req.RoleIDs}})
}

// ListRoles handles GET /roles.
func (h *UsersHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.roles.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(roles))
	for _, role := range roles {
		items = append(items, fiber.Map{
			"id":        role.ID,
			"code":      role.Code,
			"name":      role.Name,
			"descr":     role.Descr,
			"role_type": role.RoleType,
			"status":    role.Status,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateRole handles POST /roles.
func (h *UsersHandler) CreateRole(c *fiber.Ctx) error {
	var req dto.RoleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Code == "" || req.Name == "" {
		return apperrors.NewValidationError("code and name required", nil)
	}

	role, err := h.roles.Create(c.Context(), service.RoleCreateInput{
		Code:       req.Code,
		Name:       req.Name,
		Descr:      req.Descr,
		RoleType:   domain.RoleType(req.RoleType),
		MerchantID: req.MerchantID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"id":   role.ID,
		"code": role.Code,
		"name": role.Name,
	}})
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"param": name})
	}
	return id, nil
}
