// Package database открывает соединение с БД и поддерживает её схему.
package database

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/employee-api/internal/config"
)

// ExitSchemaInit - код завершения процесса, если схема так и не была создана
const ExitSchemaInit = 4

//go:embed migrations
var embedMigrations embed.FS

// Open создаёт *gorm.DB. Postgres и MySQL не обращаются к серверу до
// InitializeSchema; SQLite открывает файл сразу, поэтому Open тоже
// вызывается под управлением Retry (см. Connect).
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.DriverMySQL:
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.DSN(),
			SkipInitializeWithVersion: true,
		})
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Warn),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	return db, nil
}

// Connect открывает БД и применяет миграции. При ошибке соединение
// закрывается, так что Connect можно повторять.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := InitializeSchema(ctx, db, cfg.Driver, logger); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return db, nil
}

// InitializeSchema проверяет соединение и применяет миграции; повторный вызов безопасен
func InitializeSchema(ctx context.Context, db *gorm.DB, driver string, logger *slog.Logger) error {
	provider, err := newProvider(db, driver)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping database")
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "run migrations")
	}
	logResults(logger, results)
	return nil
}

// Recreate удаляет все таблицы и создаёт их заново
func Recreate(ctx context.Context, db *gorm.DB, driver string, logger *slog.Logger) error {
	provider, err := newProvider(db, driver)
	if err != nil {
		return err
	}

	down, err := provider.DownTo(ctx, 0)
	if err != nil {
		return errors.Wrap(err, "drop schema")
	}
	logResults(logger, down)

	up, err := provider.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "create schema")
	}
	logResults(logger, up)
	return nil
}

func newProvider(db *gorm.DB, driver string) (*goose.Provider, error) {
	var dialect goose.Dialect
	switch driver {
	case config.DriverPostgres:
		dialect = goose.DialectPostgres
	case config.DriverMySQL:
		dialect = goose.DialectMySQL
	case config.DriverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, errors.Errorf("unsupported database driver %q", driver)
	}

	fsys, err := fs.Sub(embedMigrations, "migrations/"+driver)
	if err != nil {
		return nil, errors.Wrap(err, "load migrations")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}

	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return nil, errors.Wrap(err, "create migration provider")
	}
	return provider, nil
}

func logResults(logger *slog.Logger, results []*goose.MigrationResult) {
	for _, r := range results {
		logger.Info("migration applied",
			slog.String("direction", r.Direction),
			slog.Int64("version", r.Source.Version),
			slog.String("path", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
}
