package middleware

import (
	"errors"
	"log"
	"strings"

	"authsvc/internal/models"
	"authsvc/internal/services"

	"github.com/gofiber/fiber/v2"
)

const userLocalsKey = "user"

// AuthRequired is a Fiber middleware that admits requests whose Authorization
// header carries a known access token. A "Bearer " prefix is optional.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if len(token) > 7 && strings.EqualFold(token[:7], "Bearer ") {
			token = strings.TrimSpace(token[7:])
		}

		user, err := authService.AuthenticateToken(token)
		if err != nil {
			if !errors.Is(err, services.ErrInvalidToken) {
				log.Printf("Token authentication failed: %v", err)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"loggedOut": true,
			})
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user attached by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}
