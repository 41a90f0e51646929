package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/taletrail/taletrail-backend/internal/middleware"
	"github.com/taletrail/taletrail-backend/internal/services"
)

// bearerUserID pulls the verified claims and maps them to the owner id. The
// owning user id always comes from the token, never from the request body.
func bearerUserID(c *fiber.Ctx, identity *services.IdentityService) (uuid.UUID, error) {
	claims, err := middleware.CurrentClaims(c)
	if err != nil {
		return uuid.Nil, err
	}
	return identity.ResolveCurrentUserID(claims)
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func limitOffset(c *fiber.Ctx) (int, int) {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
