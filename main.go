package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"katalog/internal/config"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/server"
	"katalog/internal/services"
	"katalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, cleanup, err := newApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer cleanup()

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// newApp wires the store, credential verifier, optional event client and
// HTTP app from cfg. cleanup releases the broker connection, if any.
func newApp(cfg *config.Config) (*fiber.App, func(), error) {
	cleanup := func() {}

	repo, err := newRepository(cfg)
	if err != nil {
		return nil, cleanup, err
	}

	secret, err := cfg.AuthSecret()
	if err != nil {
		return nil, cleanup, err
	}
	verifier, err := services.NewCredentialVerifier(cfg.AuthMode, secret)
	if err != nil {
		return nil, cleanup, err
	}

	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		cleanup = func() {
			if err := mqClient.Close(); err != nil {
				log.Printf("Error closing RabbitMQ client: %v", err)
			}
		}
		if err := mqClient.ConsumeProductEvents(rabbitmq.AuditLogger(log.Default())); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
		events = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, product events disabled")
	}

	productService := services.NewProductService(repo, cfg.MergePolicy, cfg.DefaultPageLimit, events)
	if cfg.SeedCatalog {
		productService.Seed(models.DefaultCatalog())
	}

	app := server.New(productService, verifier, server.Options{
		StoreDriver:    cfg.StoreDriver,
		EventsEnabled:  events != nil,
		RequestLogging: cfg.RequestLogging,
	})
	return app, cleanup, nil
}

func newRepository(cfg *config.Config) (repositories.ProductRepository, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		db, err := repositories.OpenSQLite(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return repositories.NewGORMProductRepository(db), nil
	default:
		return repositories.NewMemoryProductRepository(), nil
	}
}
