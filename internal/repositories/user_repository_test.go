package repositories_test

import (
	"strings"
	"testing"

	"authsvc/internal/database"
	"authsvc/internal/models"
	"authsvc/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repositoryFactories lets each behaviour run against every implementation.
var repositoryFactories = map[string]func(t *testing.T) repositories.UserRepository{
	"memory": func(_ *testing.T) repositories.UserRepository {
		return repositories.NewMemoryUserRepository()
	},
	"gorm": func(t *testing.T) repositories.UserRepository {
		dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
		db, err := database.Open(database.DriverSQLite, dsn)
		require.NoError(t, err)
		return repositories.NewGORMUserRepository(db)
	},
}

func newUser(name, email, token string) *models.User {
	return &models.User{Name: name, Email: email, Password: "$2a$10$hash", AccessToken: token}
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	for name, factory := range repositoryFactories {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)

			user := newUser("alice", "alice@example.com", "token-alice")
			require.NoError(t, repo.Create(user))
			assert.NotEmpty(t, user.ID)

			byEmail, err := repo.GetByEmail("alice@example.com")
			require.NoError(t, err)
			assert.Equal(t, user.ID, byEmail.ID)
			assert.Equal(t, "alice", byEmail.Name)

			byToken, err := repo.GetByAccessToken("token-alice")
			require.NoError(t, err)
			assert.Equal(t, user.ID, byToken.ID)
		})
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	for name, factory := range repositoryFactories {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)

			_, err := repo.GetByEmail("nobody@example.com")
			assert.ErrorIs(t, err, repositories.ErrUserNotFound)

			_, err = repo.GetByAccessToken("missing")
			assert.ErrorIs(t, err, repositories.ErrUserNotFound)
		})
	}
}

func TestUserRepository_Uniqueness(t *testing.T) {
	for name, factory := range repositoryFactories {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)
			require.NoError(t, repo.Create(newUser("bob", "bob@example.com", "token-1")))

			// Same email
			err := repo.Create(newUser("bobby", "bob@example.com", "token-2"))
			assert.ErrorIs(t, err, repositories.ErrDuplicateUser)
			assert.Contains(t, err.Error(), `email "bob@example.com"`)

			// Same name
			err = repo.Create(newUser("bob", "other@example.com", "token-3"))
			assert.ErrorIs(t, err, repositories.ErrDuplicateUser)
			assert.Contains(t, err.Error(), `name "bob"`)

			// Same access token
			err = repo.Create(newUser("carol", "carol@example.com", "token-1"))
			assert.ErrorIs(t, err, repositories.ErrDuplicateUser)
			assert.Contains(t, err.Error(), "access token")

			_, err = repo.GetByAccessToken("token-2")
			assert.ErrorIs(t, err, repositories.ErrUserNotFound)
		})
	}
}
