package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "shopfront/internal/log"
	"shopfront/internal/query"
	"shopfront/internal/repos"
	"shopfront/internal/services"
)

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// badInput logs the rejected field and answers 400.
func badInput(c *fiber.Ctx, field, msg string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return fail(c, fiber.StatusBadRequest, msg)
}

// failFrom maps service errors to statuses; anything unrecognized becomes a
// 500 without internal detail.
func failFrom(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrUnknownProduct), errors.Is(err, repos.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "product not found")
	case errors.Is(err, services.ErrOutOfStock):
		return fail(c, fiber.StatusConflict, "product is out of stock")
	case errors.Is(err, query.ErrInvalidLimit):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		applog.Error(c, action+".timeout", err, nil)
		return fail(c, fiber.StatusGatewayTimeout, "catalog did not answer in time")
	case errors.Is(err, context.Canceled):
		return fail(c, fiber.StatusServiceUnavailable, "request cancelled")
	}
	applog.Error(c, action+".fail", err, nil)
	return fail(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
}

// ErrorHandler is the app-wide fallback: it keeps fiber's status for
// *fiber.Error and never echoes internal messages for anything else.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return fail(c, fe.Code, fe.Message)
	}
	applog.Error(c, "server.error", err, nil)
	return fail(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
}

// NotFound answers any route nothing else matched.
func NotFound(c *fiber.Ctx) error {
	return fail(c, fiber.StatusNotFound, "not found")
}
