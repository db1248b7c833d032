package middleware

import (
	"errors"
	"log"

	"katalog/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the single place where errors become responses.
// Domain errors keep their status and message, Fiber errors keep theirs,
// anything else is logged and answered with a bare 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var statusErr apperrors.StatusError
	if errors.As(err, &statusErr) {
		return c.Status(statusErr.StatusCode()).SendString(statusErr.Error())
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).SendString(fiberErr.Message)
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
}
