package middleware

import (
	"log"

	"katalog/internal/apperrors"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// APIKeyHeader carries the caller's credential.
const APIKeyHeader = "X-Api-Key"

// APIKeyRequired is a Fiber middleware that rejects requests whose API key the
// verifier does not accept. Nothing downstream runs for a rejected request.
func APIKeyRequired(verifier services.CredentialVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !verifier.Verify(c.Get(APIKeyHeader)) {
			log.Printf("Rejected API key for %s %s", c.Method(), c.Path())
			return apperrors.Unauthorized(apperrors.MsgUnauthorized)
		}
		return c.Next()
	}
}
