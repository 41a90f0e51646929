package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/middleware"
	"github.com/taletrail/taletrail-backend/internal/services"
	"github.com/taletrail/taletrail-backend/internal/validation"
)

type ProfileHandler struct {
	identityService *services.IdentityService
}

func NewProfileHandler(identityService *services.IdentityService) *ProfileHandler {
	return &ProfileHandler{identityService: identityService}
}

// GetMyProfile resolves the token to a profile row, provisioning one from the
// claims on first sight.
func (h *ProfileHandler) GetMyProfile(c *fiber.Ctx) error {
	claims, err := middleware.CurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	user, err := h.identityService.ResolveCurrentUser(claims)
	if err != nil {
		if errors.Is(err, services.ErrNoSubject) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(err.Error(), nil))
		}
		slog.Error("profile resolution failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}

	return c.JSON(dto.OK("Profile retrieved", user))
}

func (h *ProfileHandler) UpdateMyProfile(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}

	user, err := h.identityService.UpdateProfile(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("User not found", nil))
		}
		slog.Error("profile update failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}

	return c.JSON(dto.OK("Profile updated", user))
}

func (h *ProfileHandler) DeleteMyProfile(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	if err := h.identityService.DeleteUser(userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("User not found", nil))
		}
		slog.Error("profile deletion failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}

	return c.JSON(dto.OK("Account deleted successfully", nil))
}
