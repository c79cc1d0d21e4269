package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/roadhelper/internal/apperr"
)

// Response status discriminators. Every JSON body carries one.
const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

// respondError maps a service error onto the response envelope. Internal
// errors are logged server-side and never leak details to the client.
func respondError(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case apperr.KindValidation, apperr.KindConflict, apperr.KindExpired:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  statusFail,
				"message": ae.Message,
			})
		case apperr.KindNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  statusFail,
				"message": ae.Message,
			})
		case apperr.KindAuth:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  statusFail,
				"message": ae.Message,
			})
		}
	}

	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  statusError,
		"message": "Internal Server Error",
	})
}
