package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/services"
	"shopfront/internal/validate"
)

// CategoryHandler serves browse data: facet lists and curated collections.
type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.Categories(c.UserContext())
	if err != nil {
		return failFrom(c, "categories", err)
	}
	return c.JSON(fiber.Map{"data": cats})
}

func (h *CategoryHandler) Brands(c *fiber.Ctx) error {
	brands, err := h.Catalog.Brands(c.UserContext())
	if err != nil {
		return failFrom(c, "brands", err)
	}
	return c.JSON(fiber.Map{"data": brands})
}

func (h *CategoryHandler) PriceRange(c *fiber.Ctx) error {
	pr, err := h.Catalog.PriceRange(c.UserContext())
	if err != nil {
		return failFrom(c, "price_range", err)
	}
	return c.JSON(pr)
}

func (h *CategoryHandler) Facets(c *fiber.Ctx) error {
	f, err := h.Catalog.Facets(c.UserContext())
	if err != nil {
		return failFrom(c, "facets", err)
	}
	return c.JSON(f)
}

// Collection serves /collections/:name (featured, bestsellers, new, sale).
func (h *CategoryHandler) Collection(c *fiber.Ctx) error {
	name := c.Params("name")
	ps, ok, err := h.Catalog.Collection(c.UserContext(), name, validate.Limit(c.Query("limit"), 8))
	if err != nil {
		return failFrom(c, "collection", err)
	}
	if !ok {
		return fail(c, fiber.StatusNotFound, "unknown collection")
	}
	return c.JSON(fiber.Map{"data": ps})
}
