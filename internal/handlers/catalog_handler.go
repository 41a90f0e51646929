package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/services"
	"github.com/taletrail/taletrail-backend/internal/validation"
)

// CatalogHandler serves the author/publisher/category CRUD families. All
// three follow the same shape: public reads, authenticated writes.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) CreateAuthor(c *fiber.Ctx) error {
	var req dto.CreateAuthorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}
	author, err := h.catalogService.CreateAuthor(&req)
	if err != nil {
		slog.Error("author creation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Author created", author))
}

func (h *CatalogHandler) ListAuthors(c *fiber.Ctx) error {
	authors, err := h.catalogService.ListAuthors()
	if err != nil {
		slog.Error("author list failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Authors retrieved", authors))
}

func (h *CatalogHandler) GetAuthor(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid author id", nil))
	}
	author, err := h.catalogService.GetAuthor(id)
	if err != nil {
		return h.mapError(c, err, "author lookup failed")
	}
	return c.JSON(dto.OK("Author retrieved", author))
}

func (h *CatalogHandler) UpdateAuthor(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid author id", nil))
	}
	var req dto.CreateAuthorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}
	author, err := h.catalogService.UpdateAuthor(id, &req)
	if err != nil {
		return h.mapError(c, err, "author update failed")
	}
	return c.JSON(dto.OK("Author updated", author))
}

func (h *CatalogHandler) DeleteAuthor(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid author id", nil))
	}
	if err := h.catalogService.DeleteAuthor(id); err != nil {
		return h.mapError(c, err, "author deletion failed")
	}
	return c.JSON(dto.OK("Author deleted", nil))
}

func (h *CatalogHandler) CreatePublisher(c *fiber.Ctx) error {
	var req dto.CreatePublisherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}
	publisher, err := h.catalogService.CreatePublisher(&req)
	if err != nil {
		slog.Error("publisher creation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Publisher created", publisher))
}

func (h *CatalogHandler) ListPublishers(c *fiber.Ctx) error {
	publishers, err := h.catalogService.ListPublishers()
	if err != nil {
		slog.Error("publisher list failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Publishers retrieved", publishers))
}

func (h *CatalogHandler) GetPublisher(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid publisher id", nil))
	}
	publisher, err := h.catalogService.GetPublisher(id)
	if err != nil {
		return h.mapError(c, err, "publisher lookup failed")
	}
	return c.JSON(dto.OK("Publisher retrieved", publisher))
}

func (h *CatalogHandler) UpdatePublisher(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid publisher id", nil))
	}
	var req dto.CreatePublisherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}
	publisher, err := h.catalogService.UpdatePublisher(id, &req)
	if err != nil {
		return h.mapError(c, err, "publisher update failed")
	}
	return c.JSON(dto.OK("Publisher updated", publisher))
}

func (h *CatalogHandler) DeletePublisher(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid publisher id", nil))
	}
	if err := h.catalogService.DeletePublisher(id); err != nil {
		return h.mapError(c, err, "publisher deletion failed")
	}
	return c.JSON(dto.OK("Publisher deleted", nil))
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}
	category, err := h.catalogService.CreateCategory(&req)
	if err != nil {
		slog.Error("category creation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Category created", category))
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		slog.Error("category list failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Categories retrieved", categories))
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid category id", nil))
	}
	category, err := h.catalogService.GetCategory(id)
	if err != nil {
		return h.mapError(c, err, "category lookup failed")
	}
	return c.JSON(dto.OK("Category retrieved", category))
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid category id", nil))
	}
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}
	category, err := h.catalogService.UpdateCategory(id, &req)
	if err != nil {
		return h.mapError(c, err, "category update failed")
	}
	return c.JSON(dto.OK("Category updated", category))
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid category id", nil))
	}
	if err := h.catalogService.DeleteCategory(id); err != nil {
		return h.mapError(c, err, "category deletion failed")
	}
	return c.JSON(dto.OK("Category deleted", nil))
}

func (h *CatalogHandler) mapError(c *fiber.Ctx, err error, logMsg string) error {
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error(), nil))
	}
	slog.Error(logMsg, "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
}
