package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/employee-api/internal/config"
	"github.com/employee-api/internal/database"
	"github.com/employee-api/internal/dto"
	"github.com/employee-api/internal/factory"
)

// newDBCreateCommand пересоздаёт схему: все данные будут удалены
func newDBCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "db-create",
		Short: "Drop and recreate the database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log)

			db, err := database.Open(cfg.Database)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return errors.Wrap(err, "get sql.DB")
			}
			defer sqlDB.Close()

			if err := database.Recreate(cmd.Context(), db, cfg.Database.Driver, logger); err != nil {
				logger.Error("failed to recreate schema", slog.Any("error", err))
				return err
			}
			logger.Info("database tables recreated")
			return nil
		},
	}
}

func newSampleCommand() *cobra.Command {
	var (
		count  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write fake employees as JSON request bodies to a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return errors.Errorf("count must not be negative, got %d", count)
			}

			requests := make([]dto.EmployeeRequest, 0, count)
			for _, emp := range factory.NewEmployeeFactory().Employees(count) {
				requests = append(requests, dto.NewEmployeeRequest(emp))
			}

			data, err := json.MarshalIndent(requests, "", "    ")
			if err != nil {
				return errors.Wrap(err, "encode sample employees")
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrapf(err, "write %s", output)
			}
			cmd.Printf("wrote %d employees to %s\n", count, output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of employees to generate")
	cmd.Flags().StringVarP(&output, "output", "o", "sample_employees.json", "output file")
	return cmd
}
