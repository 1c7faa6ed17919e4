package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/skwermkt/internal/utils"
)

// ErrorHandler maps application errors to JSON responses. Validation errors
// carry their field list; fiber errors keep their status and message; any
// other error is logged and answered with a generic 500 so internal detail
// never reaches the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validationErr *utils.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": validationErr.Fields,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
		})
	}

	log.Printf("unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
