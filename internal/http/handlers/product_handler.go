package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/services"
	"shopfront/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badInput(c, "id", "invalid product id")
	}
	p, err := h.Catalog.Product(c.UserContext(), id)
	if err != nil {
		return failFrom(c, "product.detail", err)
	}
	if p == nil {
		return fail(c, fiber.StatusNotFound, "This item is no longer available")
	}
	return c.JSON(p)
}

func (h *ProductHandler) Related(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badInput(c, "id", "invalid product id")
	}
	ps, err := h.Catalog.Related(c.UserContext(), id, validate.Limit(c.Query("limit"), 4))
	if err != nil {
		return failFrom(c, "product.related", err)
	}
	return c.JSON(fiber.Map{"data": ps})
}
