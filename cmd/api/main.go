package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gorm.io/gorm"

	"github.com/employee-api/internal/config"
	"github.com/employee-api/internal/database"
	"github.com/employee-api/internal/handler"
	"github.com/employee-api/internal/middleware"
	"github.com/employee-api/internal/repository"
	"github.com/employee-api/internal/service"
)

// schemaInitError - схему не удалось создать за все попытки
type schemaInitError struct {
	err error
}

func (e *schemaInitError) Error() string {
	return "initialize database schema: " + e.err.Error()
}

func (e *schemaInitError) Unwrap() error {
	return e.err
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var schemaErr *schemaInitError
	if errors.As(err, &schemaErr) {
		return database.ExitSchemaInit
	}
	return 1
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "employee-api",
		Short:        "Employee Demo REST API Service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cmd.Flags())
		},
	}

	cmd.PersistentFlags().String("database-uri", "", "database connection string (overrides DATABASE_URI)")
	cmd.PersistentFlags().String("database-driver", "", "database driver: postgres, mysql or sqlite")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().String("port", "", "HTTP port to listen on")

	cmd.AddCommand(newDBCreateCommand(), newSampleCommand())
	return cmd
}

func serve(ctx context.Context, flags *pflag.FlagSet) error {
	// Загрузка конфигурации
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	// Инициализация логгера
	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к БД и создание схемы с повторными попытками
	var db *gorm.DB
	err = database.Retry(ctx, cfg.Retry, logger, func(ctx context.Context) error {
		var err error
		db, err = database.Connect(ctx, cfg.Database, logger)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			logger.Info("startup interrupted", slog.Any("error", err))
			return nil
		}
		logger.Error("cannot continue without database schema", slog.Any("error", err))
		return &schemaInitError{err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", slog.Any("error", err))
		return err
	}
	defer sqlDB.Close()

	// Инициализация слоёв
	empRepo := repository.NewEmployeeRepository(db)
	empService := service.NewEmployeeService(empRepo, logger)
	empHandler := handler.NewEmployeeHandler(empService, logger)

	var metrics *middleware.Metrics
	if cfg.Metrics.Enabled {
		metrics = middleware.NewMetrics()
	}

	// Настройка роутера
	router := handler.NewRouter(empHandler, logger, cfg.CORS, metrics)
	httpHandler := router.Setup()

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		logger.Info("server is shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info(strings.Repeat("*", 70))
	logger.Info(centered(" EMPLOYEE MANAGEMENT SERVICE ", 70, '*'))
	logger.Info(strings.Repeat("*", 70))
	logger.Info("server is starting",
		slog.String("port", cfg.Server.Port),
		slog.String("driver", cfg.Database.Driver),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}

func centered(s string, width int, fill rune) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), pad-left)
}
