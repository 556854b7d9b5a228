package database_test

import (
	"testing"

	"authsvc/internal/database"
	"authsvc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMigratesUsers(t *testing.T) {
	db, err := database.Open(database.DriverSQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "Email"))
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "Name"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open("mongodb", "mongodb://localhost/auth")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
