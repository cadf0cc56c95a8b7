package database_test

import (
	"fmt"
	"testing"

	"tienda/internal/config"
	"tienda/internal/database"
	"tienda/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMigratesProducts(t *testing.T) {
	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}, zerolog.Nop())
	require.NoError(t, err)
	defer database.Close(db)

	assert.True(t, db.Migrator().HasTable(&models.Product{}))
	assert.True(t, db.Migrator().HasColumn(&models.Product{}, "availability"))
	assert.NoError(t, database.Ping(db))
}

func TestOpen_RejectsMemoryDriver(t *testing.T) {
	_, err := database.Open(config.DatabaseConfig{Driver: config.DriverMemory}, zerolog.Nop())
	assert.Error(t, err)
}
