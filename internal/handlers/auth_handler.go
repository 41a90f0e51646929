package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/services"
	"github.com/taletrail/taletrail-backend/internal/validation"
)

type AuthHandler struct {
	authService     *services.AuthService
	identityService *services.IdentityService
}

func NewAuthHandler(authService *services.AuthService, identityService *services.IdentityService) *AuthHandler {
	return &AuthHandler{authService: authService, identityService: identityService}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}

	resp, err := h.authService.Signup(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) || errors.Is(err, services.ErrUsernameTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error(), nil))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OK("Account created", resp))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(err.Error(), nil))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}

	return c.JSON(dto.OK("Logged in", resp))
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(err.Error(), nil))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}

	return c.JSON(dto.OK("Token refreshed", resp))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}

	if err := h.authService.Logout(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to logout", nil))
	}

	return c.JSON(dto.OK("Logged out successfully", nil))
}

func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}

	if err := h.authService.DeleteAccount(userID, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Incorrect password. Please try again.", nil))
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("User not found", nil))
		}
		if strings.Contains(err.Error(), "password is required") {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Password is required", nil))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to delete account", nil))
	}

	return c.JSON(dto.OK("Account deleted successfully", nil))
}
