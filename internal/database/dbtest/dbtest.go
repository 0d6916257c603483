// Package dbtest поднимает мигрированную SQLite базу для тестов.
package dbtest

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/employee-api/internal/config"
	"github.com/employee-api/internal/database"
)

// Logger молчит, чтобы не засорять вывод тестов
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New открывает отдельную базу в t.TempDir() и применяет миграции
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URI:    filepath.Join(t.TempDir(), "employees.db"),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.InitializeSchema(context.Background(), db, config.DriverSQLite, Logger()))
	return db
}
