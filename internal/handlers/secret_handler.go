package handlers

import (
	"log"

	"authsvc/internal/middleware"
	"authsvc/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Greeting is the body served on the root path.
const Greeting = "Hello Technigo!"

// SecretMessage is returned to authenticated callers of /secrets.
const SecretMessage = "This is a super secret message."

// SecretHandler serves the greeting and the token-gated secret.
type SecretHandler struct {
	authService *services.AuthService
}

// NewSecretHandler creates a new SecretHandler.
func NewSecretHandler(authService *services.AuthService) *SecretHandler {
	return &SecretHandler{authService: authService}
}

// RegisterRoutes registers the greeting and the protected secret route.
func (h *SecretHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleGreeting)
	router.Get("/secrets", middleware.AuthRequired(h.authService), h.HandleSecret)
}

// HandleGreeting serves the plain-text greeting on the root path.
func (h *SecretHandler) HandleGreeting(c *fiber.Ctx) error {
	return c.SendString(Greeting)
}

// HandleSecret returns the secret message to a caller admitted by AuthRequired.
func (h *SecretHandler) HandleSecret(c *fiber.Ctx) error {
	if user := middleware.CurrentUser(c); user != nil {
		log.Printf("Secret served to user %s", user.ID)
	}
	return c.JSON(fiber.Map{
		"secret": SecretMessage,
	})
}
