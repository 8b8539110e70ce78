package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	authmw "hadirku_backend/internals/middlewares/auth"
)

// GetEmployeeIDFromToken mengambil employee_id hasil hydrate middleware AuthJWT.
func GetEmployeeIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localUUID(c, authmw.LocEmployeeID, "Employee tidak ditemukan di token")
}

// GetTenantIDFromToken mengambil tenant_id hasil hydrate middleware AuthJWT.
func GetTenantIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localUUID(c, authmw.LocTenantID, "Tenant tidak ditemukan di token")
}

func localUUID(c *fiber.Ctx, key, msg string) (uuid.UUID, error) {
	v := c.Locals(key)
	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(t))
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, msg)
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, msg)
	}
}
