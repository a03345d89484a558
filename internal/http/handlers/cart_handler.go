package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

// lineRequest accepts JSON or form bodies.
type lineRequest struct {
	ProductID string `json:"productId" form:"productId"`
	Qty       int    `json:"qty" form:"qty"`
}

func parseLine(c *fiber.Ctx) (lineRequest, bool) {
	var req lineRequest
	if err := c.BodyParser(&req); err != nil {
		return req, false
	}
	id, ok := validate.ID(req.ProductID)
	req.ProductID = id
	req.Qty = validate.QtyN(req.Qty)
	return req, ok
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := sessionID(c)
	req, ok := parseLine(c)
	if !ok {
		return badInput(c, "productId", "missing productId")
	}
	if err := h.Cart.Add(c.UserContext(), sid, req.ProductID, req.Qty); err != nil {
		return failFrom(c, "cart.add", err)
	}
	applog.Audit(c, "cart.add", map[string]any{"product": req.ProductID, "qty": req.Qty})
	return h.View(c)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := sessionID(c)
	req, ok := parseLine(c)
	if !ok {
		return badInput(c, "productId", "missing productId")
	}
	if err := h.Cart.Remove(sid, req.ProductID); err != nil {
		return failFrom(c, "cart.remove", err)
	}
	applog.Audit(c, "cart.remove", map[string]any{"product": req.ProductID})
	return h.View(c)
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(sessionID(c))
	if err != nil {
		return failFrom(c, "cart.view", err)
	}
	return c.JSON(cv)
}
