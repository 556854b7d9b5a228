package repositories

import (
	"errors"
	"fmt"

	"authsvc/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
// Uniqueness of name, email and access token is enforced by the table's unique indexes.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to create user: %s: %w", r.conflictingField(user), ErrDuplicateUser)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.first("email = ?", email)
}

// GetByAccessToken retrieves the user owning the given access token.
func (r *GORMUserRepository) GetByAccessToken(token string) (*models.User, error) {
	return r.first("access_token = ?", token)
}

// conflictingField names the unique column already holding user's value.
func (r *GORMUserRepository) conflictingField(user *models.User) string {
	if r.exists("email = ?", user.Email) {
		return fmt.Sprintf("email %q", user.Email)
	}
	if r.exists("name = ?", user.Name) {
		return fmt.Sprintf("name %q", user.Name)
	}
	return "access token"
}

func (r *GORMUserRepository) exists(query string, arg string) bool {
	var count int64
	if err := r.db.Model(&models.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

func (r *GORMUserRepository) first(query string, arg string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
