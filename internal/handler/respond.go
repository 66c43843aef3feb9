package handler

import (
	"errors"

	"go-backoffice-api/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto HTTP status codes and the
// {"error": ...} envelope.
func respondError(c *fiber.Ctx, err error) error {
	var nf *apperr.NotFoundError
	var ve *apperr.ValidationError
	var cf *apperr.ConflictError

	switch {
	case errors.As(err, &nf), errors.Is(err, apperr.ErrLineNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": ve.Fields,
		})
	case errors.As(err, &cf):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case apperr.IsClientError(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
