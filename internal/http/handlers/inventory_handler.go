package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/services"
	"shopfront/internal/validate"
)

type InventoryHandler struct {
	Catalog *services.CatalogService
}

// Check reports the stock badge for one product.
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badInput(c, "id", "invalid product id")
	}
	p, err := h.Catalog.Product(c.UserContext(), id)
	if err != nil {
		return failFrom(c, "availability", err)
	}
	if p == nil {
		return fail(c, fiber.StatusNotFound, "product not found")
	}
	return c.JSON(services.Availability(*p))
}
