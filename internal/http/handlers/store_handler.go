package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/cache"
	"shopfront/internal/services"
)

// StoreHandler exposes the catalog store's loading state for polling UIs.
type StoreHandler struct {
	Catalog *services.CatalogService
	Cache   *cache.Cache // nil when Redis is not configured
}

func (h *StoreHandler) State(c *fiber.Ctx) error {
	out := fiber.Map{
		"state":       h.Catalog.State(),
		"catalogSize": h.Catalog.Engine.Len(),
	}
	if h.Cache != nil {
		out["cache"] = h.Cache.Stats()
	}
	return c.JSON(out)
}

func (h *StoreHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true, "products": h.Catalog.Engine.Len()})
}
