package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/venue-service/internal/api/dto"
	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/service"
	apperrors "github.com/spec-kit/venue-service/pkg/util"
)

// AuthHandler exposes login, registration, and token lifecycle endpoints.
type AuthHandler struct {
	auth             *service.AuthService
	devRoutesEnabled bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, devRoutesEnabled bool) *AuthHandler {
	return &AuthHandler{auth: authService, devRoutesEnabled: devRoutesEnabled}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	result, err := h.auth.Register(c.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		RealName: req.RealName,
		Phone:    req.Phone,
		Email:    req.Email,
		UserType: req.UserType,
	})
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"user": userSummary(result.User),
		"auth": authResponse(result),
	}})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	result, err := h.auth.Login(c.Context(), req.Username, req.Password, c.IP())
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"user": userSummary(result.User),
		"auth": authResponse(result),
	}})
}

// Logout handles POST /auth/logout: revokes the presented token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return apperrors.NewUnauthorized("bearer token required")
	}
	if err := h.auth.Logout(c.Context(), token); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Refresh handles POST /auth/refresh: exchanges a valid token for a new one.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return apperrors.NewUnauthorized("bearer token required")
	}

	result, err := h.auth.Refresh(c.Context(), token)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return apperrors.NewUnauthorized("invalid token")
		}
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"auth": authResponse(result)}})
}

// UserInfo handles GET /auth/user/info.
func (h *AuthHandler) UserInfo(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return apperrors.NewUnauthorized("bearer token required")
	}

	user, err := h.auth.CurrentUser(c.Context(), token)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return apperrors.NewUnauthorized("invalid token")
		}
		return err
	}

	return c.JSON(fiber.Map{"data": userDetail(user)})
}

// DevResetPassword handles POST /auth/dev/reset-password. Disabled outside
// development environments.
func (h *AuthHandler) DevResetPassword(c *fiber.Ctx) error {
	if !h.devRoutesEnabled {
		return apperrors.NewNotFound("route", nil)
	}

	var req dto.DevResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("username and new_password required", nil)
	}

	if err := h.auth.DevResetPassword(c.Context(), req.Username, req.NewPassword); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

func authResponse(result *service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		ExpiresIn: result.ExpiresIn,
	}
}

func userSummary(user *domain.User) fiber.Map {
	return fiber.Map{
		"id":        user.ID,
		"username":  user.Username,
		"user_type": user.UserType,
		"status":    user.Status,
	}
}

func userDetail(user *domain.User) fiber.Map {
	roles := make([]fiber.Map, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, fiber.Map{"id": role.ID, "code": role.Code, "name": role.Name})
	}
	return fiber.Map{
		"id":           user.ID,
		"username":     user.Username,
		"real_name":    user.RealName,
		"phone":        user.Phone,
		"email":        user.Email,
		"user_type":    user.UserType,
		"merchant_id":  user.MerchantID,
		"status":       user.Status,
		"points":       user.Points,
		"member_level": user.MemberLevel,
		"roles":        roles,
	}
}
