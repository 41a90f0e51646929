package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/models"
	"github.com/taletrail/taletrail-backend/internal/services"
	"github.com/taletrail/taletrail-backend/internal/validation"
)

type UserBookHandler struct {
	readingList     *services.ReadingListService
	identityService *services.IdentityService
}

func NewUserBookHandler(readingList *services.ReadingListService, identityService *services.IdentityService) *UserBookHandler {
	return &UserBookHandler{readingList: readingList, identityService: identityService}
}

func (h *UserBookHandler) Add(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	var req dto.AddUserBookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}

	status, err := models.ParseReadingStatus(req.ReadingStatus)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error(), nil))
	}
	bookID, _ := uuid.Parse(req.BookID)

	entry, err := h.readingList.AddBook(userID, bookID, status, req.Progress)
	if err != nil {
		return h.mapError(c, err, userID)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OK("Book added to list", entry))
}

func (h *UserBookHandler) Update(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}
	bookID, err := parseUUIDParam(c, "bookId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid book id", nil))
	}

	var req dto.UpdateUserBookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}

	status, err := models.ParseReadingStatus(req.ReadingStatus)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error(), nil))
	}

	entry, err := h.readingList.UpdateBook(userID, bookID, status, req.Progress)
	if err != nil {
		return h.mapError(c, err, userID)
	}

	return c.JSON(dto.OK("List entry updated", entry))
}

func (h *UserBookHandler) Remove(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}
	bookID, err := parseUUIDParam(c, "bookId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid book id", nil))
	}

	if err := h.readingList.RemoveBook(userID, bookID); err != nil {
		return h.mapError(c, err, userID)
	}

	return c.JSON(dto.OK("Book removed from list", nil))
}

func (h *UserBookHandler) List(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	entries, err := h.readingList.ListBooks(userID)
	if err != nil {
		return h.mapError(c, err, userID)
	}

	return c.JSON(dto.OK("Reading list retrieved", entries))
}

func (h *UserBookHandler) ListInProgress(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	entries, err := h.readingList.ListInProgress(userID)
	if err != nil {
		return h.mapError(c, err, userID)
	}

	return c.JSON(dto.OK("In-progress books retrieved", entries))
}

func (h *UserBookHandler) mapError(c *fiber.Ctx, err error, userID uuid.UUID) error {
	switch {
	case errors.Is(err, services.ErrBookNotFound), errors.Is(err, services.ErrNotInList):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error(), nil))
	case errors.Is(err, services.ErrAlreadyInList), errors.Is(err, services.ErrTooManyInProgress):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error(), nil))
	}
	slog.Error("reading list operation failed", "error", err, "user_id", userID.String())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
}
