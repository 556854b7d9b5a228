package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"

	"authsvc/internal/database"
	"authsvc/internal/handlers"
	"authsvc/internal/repositories"
	"authsvc/internal/services"
	"authsvc/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := loadConfig(viper.New())

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		log.Println("Starting RabbitMQ consumer for user events...")
		if err := mqClient.ConsumeUserEvents(rabbitmq.LogUserEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL not set. User events are disabled.")
	}

	app, _, err := NewApp(cfg, publisher)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Start HTTP Server ---
	addr := cfg.ListenAddr()
	log.Printf("Server running on http://localhost%s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(addr); err != nil {
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

// NewApp wires the repository, service and handlers into a Fiber app. publisher may be nil.
func NewApp(cfg Config, publisher services.EventPublisher) (*fiber.App, *services.AuthService, error) {
	userRepo, err := newUserRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	authService := services.NewAuthService(userRepo, publisher)

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))

	handlers.NewSecretHandler(authService).RegisterRoutes(app)
	handlers.NewAuthHandler(authService).RegisterRoutes(app)

	return app, authService, nil
}

func newUserRepository(cfg Config) (repositories.UserRepository, error) {
	if cfg.DatabaseDriver == driverMemory {
		log.Println("Using in-memory user repository")
		return repositories.NewMemoryUserRepository(), nil
	}
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	return repositories.NewGORMUserRepository(db), nil
}
