// Package databasetest provides throwaway SQLite databases for tests.
package databasetest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lakeside-hotel/service-booking/internal/platform/database"
)

// NewSQLite opens an in-memory database private to t and migrates it with migrate.
func NewSQLite(t *testing.T, migrate func(*gorm.DB) error) *gorm.DB {
	t.Helper()

	cfg := database.Config{
		Driver:       database.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
	db, err := database.Connect(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	if migrate != nil {
		require.NoError(t, migrate(db))
	}
	return db
}
