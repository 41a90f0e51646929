package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/services"
	"github.com/taletrail/taletrail-backend/internal/validation"
)

type BookHandler struct {
	bookService     *services.BookService
	identityService *services.IdentityService
}

func NewBookHandler(bookService *services.BookService, identityService *services.IdentityService) *BookHandler {
	return &BookHandler{bookService: bookService, identityService: identityService}
}

func (h *BookHandler) List(c *fiber.Ctx) error {
	limit, offset := limitOffset(c)
	books, total, err := h.bookService.List(c.Query("search"), limit, offset)
	if err != nil {
		slog.Error("book list failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Books retrieved", fiber.Map{"books": books, "total": total}))
}

func (h *BookHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid book id", nil))
	}

	book, err := h.bookService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error(), nil))
		}
		slog.Error("book lookup failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Book retrieved", book))
}

func (h *BookHandler) Create(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}

	book, err := h.bookService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Referenced author, publisher or category not found", nil))
		}
		slog.Error("book creation failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Book created", book))
}

func (h *BookHandler) Update(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid book id", nil))
	}

	var req dto.UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}

	book, err := h.bookService.Update(userID, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error(), nil))
		}
		if errors.Is(err, services.ErrNotBookOwner) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail(err.Error(), nil))
		}
		slog.Error("book update failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Book updated", book))
}

func (h *BookHandler) Delete(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid book id", nil))
	}

	if err := h.bookService.Delete(userID, id); err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error(), nil))
		}
		if errors.Is(err, services.ErrNotBookOwner) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail(err.Error(), nil))
		}
		slog.Error("book deletion failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Book deleted", nil))
}
