package handlers

import (
	"errors"
	"log"

	"cuahang/internal/repositories"
	"cuahang/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error to the wire contract: 404 with the given
// message for unresolvable references, 400 for rejected status values and
// stock floors, and otherwise a generic 500 with the detail only logged.
func respondError(c *fiber.Ctx, err error, notFoundMessage string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": notFoundMessage,
		})
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}
