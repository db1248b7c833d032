package server

import (
	"time"

	"katalog/internal/handlers"
	"katalog/internal/middleware"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Options tune the assembled app.
type Options struct {
	StoreDriver    string
	EventsEnabled  bool
	RequestLogging bool
}

// New assembles the Fiber app: public root and health routes, and the product
// API behind the API key gate. Every error goes through middleware.ErrorHandler.
func New(productService *services.ProductService, verifier services.CredentialVerifier, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "katalog",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	if opts.RequestLogging {
		app.Use(logger.New())
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello World!")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  opts.StoreDriver,
			"events": opts.EventsEnabled,
		})
	})

	api := app.Group("/api", middleware.APIKeyRequired(verifier))
	handlers.NewProductHandler(productService).RegisterRoutes(api)

	return app
}
