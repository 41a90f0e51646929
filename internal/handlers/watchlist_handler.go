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

type WatchlistHandler struct {
	watchlistService *services.WatchlistService
	identityService  *services.IdentityService
}

func NewWatchlistHandler(watchlistService *services.WatchlistService, identityService *services.IdentityService) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService, identityService: identityService}
}

func (h *WatchlistHandler) Add(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	var req dto.AddWatchlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}
	bookID, _ := uuid.Parse(req.BookID)

	entry, err := h.watchlistService.Add(userID, bookID, req.Note)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error(), nil))
		}
		if errors.Is(err, services.ErrAlreadyWatched) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error(), nil))
		}
		slog.Error("watchlist add failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Book added to watchlist", entry))
}

func (h *WatchlistHandler) ListMine(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	entries, err := h.watchlistService.ListMine(userID)
	if err != nil {
		slog.Error("watchlist list failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Watchlist retrieved", entries))
}

func (h *WatchlistHandler) Remove(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}
	bookID, err := parseUUIDParam(c, "bookId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid book id", nil))
	}

	if err := h.watchlistService.Remove(userID, bookID); err != nil {
		if errors.Is(err, services.ErrNotWatched) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error(), nil))
		}
		slog.Error("watchlist remove failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Book removed from watchlist", nil))
}
