package repositories

import (
	"fmt"
	"sync"
	"time"

	"authsvc/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// It enforces the same uniqueness constraints as the database schema.
type MemoryUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		switch {
		case u.Name == user.Name:
			return fmt.Errorf("name %q: %w", user.Name, ErrDuplicateUser)
		case u.Email == user.Email:
			return fmt.Errorf("email %q: %w", user.Email, ErrDuplicateUser)
		case u.AccessToken == user.AccessToken:
			return fmt.Errorf("access token: %w", ErrDuplicateUser)
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("id %s: %w", user.ID, ErrDuplicateUser)
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

// GetByEmail returns a user by their email.
func (r *MemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

// GetByAccessToken returns the user owning the given access token.
func (r *MemoryUserRepository) GetByAccessToken(token string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.AccessToken == token })
}

func (r *MemoryUserRepository) find(match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}
