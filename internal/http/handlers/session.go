package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sidCookie = "sid"

// sessionID returns the caller's anonymous session, minting a cookie on first
// use. Carts and wishlists hang off it.
func sessionID(c *fiber.Ctx) string {
	if sid, ok := c.Locals(sidCookie).(string); ok {
		return sid
	}
	sid := c.Cookies(sidCookie)
	if _, err := uuid.Parse(sid); err == nil {
		c.Locals(sidCookie, sid)
		return sid
	}
	sid = uuid.NewString()
	c.Locals(sidCookie, sid)
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // set true behind HTTPS
	})
	return sid
}

// Deadline bounds every downstream catalog call made through c.UserContext().
func Deadline(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
