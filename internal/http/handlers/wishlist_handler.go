package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopfront/internal/log"
	"shopfront/internal/services"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	items, err := h.Wish.List(sessionID(c))
	if err != nil {
		return failFrom(c, "wishlist.list", err)
	}
	return c.JSON(fiber.Map{"items": items})
}

func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	sid := sessionID(c)
	req, ok := parseLine(c)
	if !ok {
		return badInput(c, "productId", "missing productId")
	}
	if err := h.Wish.Save(c.UserContext(), sid, req.ProductID); err != nil {
		return failFrom(c, "wishlist.save", err)
	}
	applog.Audit(c, "wishlist.save", map[string]any{"product": req.ProductID})
	return h.List(c)
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	sid := sessionID(c)
	req, ok := parseLine(c)
	if !ok {
		return badInput(c, "productId", "missing productId")
	}
	if err := h.Wish.Unsave(sid, req.ProductID); err != nil {
		return failFrom(c, "wishlist.unsave", err)
	}
	applog.Audit(c, "wishlist.unsave", map[string]any{"product": req.ProductID})
	return h.List(c)
}
