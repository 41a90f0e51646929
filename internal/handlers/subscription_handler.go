package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/services"
	"github.com/taletrail/taletrail-backend/internal/validation"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
	identityService     *services.IdentityService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService, identityService *services.IdentityService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService, identityService: identityService}
}

func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}
	authorID, _ := uuid.Parse(req.AuthorID)

	sub, err := h.subscriptionService.Subscribe(userID, authorID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error(), nil))
		}
		if errors.Is(err, services.ErrAlreadySubscribed) || errors.Is(err, services.ErrSelfSubscription) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error(), nil))
		}
		slog.Error("subscription failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Subscribed", sub))
}

func (h *SubscriptionHandler) ListMine(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	subs, err := h.subscriptionService.ListMine(userID)
	if err != nil {
		slog.Error("subscription list failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Subscriptions retrieved", subs))
}

func (h *SubscriptionHandler) Unsubscribe(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}
	authorID, err := parseUUIDParam(c, "authorId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid author id", nil))
	}

	if err := h.subscriptionService.Unsubscribe(userID, authorID); err != nil {
		if errors.Is(err, services.ErrNotSubscribed) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error(), nil))
		}
		slog.Error("unsubscribe failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Unsubscribed", nil))
}
