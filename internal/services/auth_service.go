package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"authsvc/internal/models"
	"authsvc/internal/repositories"
	"authsvc/pkg/rabbitmq"

	"golang.org/x/crypto/bcrypt"
)

// AccessTokenBytes is the number of random bytes in an access token (hex encoded to twice as many characters).
const AccessTokenBytes = 128

var (
	// ErrInvalidCredentials is returned by LoginUser for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned by AuthenticateToken when no user owns the token.
	ErrInvalidToken = errors.New("invalid access token")
)

// EventPublisher publishes user lifecycle events. *rabbitmq.Client implements it.
type EventPublisher interface {
	PublishUserEvent(event rabbitmq.UserEvent) error
}

// AuthService handles registration, login and access token authentication.
type AuthService struct {
	userRepo  repositories.UserRepository
	publisher EventPublisher // optional
}

// NewAuthService creates a new AuthService. publisher may be nil.
func NewAuthService(userRepo repositories.UserRepository, publisher EventPublisher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// RegisterUser hashes the password, assigns a fresh access token and saves the user.
// Uniqueness of name and email is left to the repository.
func (s *AuthService) RegisterUser(name, email, password string) (*models.User, error) {
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	token, err := GenerateAccessToken()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:        name,
		Email:       email,
		Password:    hashedPassword,
		AccessToken: token,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.publishRegistered(user)
	return user, nil
}

func (s *AuthService) publishRegistered(user *models.User) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.UserEvent{
		Type:       rabbitmq.EventUserRegistered,
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishUserEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event for user %s: %v", event.Type, user.ID, err)
	}
}

// LoginUser returns the user matching email if password matches the stored hash.
func (s *AuthService) LoginUser(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			log.Printf("Error looking up user for login: %v", err)
		}
		return nil, ErrInvalidCredentials
	}

	if !CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// AuthenticateToken returns the user owning the access token.
func (s *AuthService) AuthenticateToken(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.GetByAccessToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to authenticate token: %w", err)
	}
	return user, nil
}

// HashPassword returns the salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateAccessToken returns a new random hex-encoded access token.
func GenerateAccessToken() (string, error) {
	b := make([]byte, AccessTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
