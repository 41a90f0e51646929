package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/services"
	"github.com/taletrail/taletrail-backend/internal/validation"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
	identityService *services.IdentityService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService, identityService *services.IdentityService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService, identityService: identityService}
}

func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	var req dto.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}

	feedback, err := h.feedbackService.Create(userID, &req)
	if err != nil {
		slog.Error("feedback creation failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Feedback submitted", feedback))
}

func (h *FeedbackHandler) ListMine(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	items, err := h.feedbackService.ListMine(userID)
	if err != nil {
		slog.Error("feedback list failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Feedback retrieved", items))
}
