package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"authsvc/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	validate := validator.New()
	if err := validate.RegisterValidation("maxbytes", maxBytes); err != nil {
		log.Fatalf("Failed to register maxbytes validation: %v", err)
	}
	return &AuthHandler{
		authService: authService,
		validate:    validate,
	}
}

// maxBytes limits a string field to the tag parameter in bytes; max counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// RegisterRoutes registers the registration and login routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/users", h.HandleRegister)
	router.Post("/sessions", h.HandleLogin)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,maxbytes=72"` // bcrypt input limit
}

// HandleRegister creates a user and returns its id and access token.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"errors":  err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	user, err := h.authService.RegisterUser(req.Name, req.Email, req.Password)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create user",
			"errors":  err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          user.ID,
		"accessToken": user.AccessToken,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials. A mismatch is reported as {"notFound": true}, not an error status.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"errors":  err.Error(),
		})
	}

	user, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("Error during login: %v", err)
		}
		return c.JSON(fiber.Map{
			"notFound": true,
		})
	}

	return c.JSON(fiber.Map{
		"userId":      user.ID,
		"accessToken": user.AccessToken,
	})
}

func validationMessages(err error) map[string]string {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorMessages["request"] = err.Error()
		return errorMessages
	}
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}
