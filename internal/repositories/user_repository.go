package repositories

import (
	"errors"

	"authsvc/internal/models"
)

var (
	// ErrUserNotFound is returned when no user matches a lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a unique field (name, email, access token) is already taken.
	ErrDuplicateUser = errors.New("user already exists")
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByAccessToken(token string) (*models.User, error)
}
