package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/taletrail/taletrail-backend/internal/dto"
	"github.com/taletrail/taletrail-backend/internal/services"
	"github.com/taletrail/taletrail-backend/internal/validation"
)

type BlogHandler struct {
	blogService     *services.BlogService
	identityService *services.IdentityService
}

func NewBlogHandler(blogService *services.BlogService, identityService *services.IdentityService) *BlogHandler {
	return &BlogHandler{blogService: blogService, identityService: identityService}
}

func (h *BlogHandler) List(c *fiber.Ctx) error {
	limit, offset := limitOffset(c)
	blogs, total, err := h.blogService.List(limit, offset)
	if err != nil {
		slog.Error("blog list failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Blogs retrieved", fiber.Map{"blogs": blogs, "total": total}))
}

func (h *BlogHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid blog id", nil))
	}

	blog, err := h.blogService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error(), nil))
		}
		slog.Error("blog lookup failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Blog retrieved", blog))
}

func (h *BlogHandler) Create(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}

	var req dto.CreateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}

	blog, err := h.blogService.Create(userID, &req)
	if err != nil {
		slog.Error("blog creation failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Blog created", blog))
}

func (h *BlogHandler) Update(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid blog id", nil))
	}

	var req dto.UpdateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body", nil))
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Validation failed", fiber.Map{"fields": fields}))
	}

	blog, err := h.blogService.Update(userID, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error(), nil))
		}
		slog.Error("blog update failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Blog updated", blog))
}

func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid blog id", nil))
	}

	if err := h.blogService.Delete(userID, id); err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error(), nil))
		}
		slog.Error("blog deletion failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Blog deleted", nil))
}

func (h *BlogHandler) Like(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid blog id", nil))
	}

	if err := h.blogService.Like(userID, id); err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error(), nil))
		}
		if errors.Is(err, services.ErrAlreadyLiked) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error(), nil))
		}
		slog.Error("blog like failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Blog liked", nil))
}

func (h *BlogHandler) Unlike(c *fiber.Ctx) error {
	userID, err := bearerUserID(c, h.identityService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", nil))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid blog id", nil))
	}

	if err := h.blogService.Unlike(userID, id); err != nil {
		if errors.Is(err, services.ErrNotLiked) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error(), nil))
		}
		slog.Error("blog unlike failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error", nil))
	}
	return c.JSON(dto.OK("Blog unliked", nil))
}
