package service

import (
	"context"
	"log/slog"

	"github.com/employee-api/internal/domain"
	"github.com/employee-api/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	List(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, id int64) (*domain.Employee, bool, error)
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	empRepo repository.EmployeeRepository
	logger  *slog.Logger
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(empRepo repository.EmployeeRepository, logger *slog.Logger) EmployeeService {
	return &employeeService{
		empRepo: empRepo,
		logger:  logger,
	}
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.empRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "listing employees", slog.Int("count", len(employees)))
	return employees, nil
}

func (s *employeeService) Get(ctx context.Context, id int64) (*domain.Employee, bool, error) {
	return s.empRepo.FindByID(ctx, id)
}

func (s *employeeService) Create(ctx context.Context, emp *domain.Employee) error {
	s.logger.InfoContext(ctx, "creating employee",
		slog.String("first_name", emp.FirstName),
		slog.String("last_name", emp.LastName),
	)
	if err := s.empRepo.Create(ctx, emp); err != nil {
		s.logFailure(ctx, "error creating employee", emp, err)
		return err
	}
	s.logger.InfoContext(ctx, "employee saved", slog.Int64("id", emp.ID))
	return nil
}

func (s *employeeService) Update(ctx context.Context, emp *domain.Employee) error {
	s.logger.InfoContext(ctx, "saving employee", slog.String("employee", emp.String()))
	if err := s.empRepo.Update(ctx, emp); err != nil {
		s.logFailure(ctx, "error updating employee", emp, err)
		return err
	}
	return nil
}

// Delete удаляет сотрудника, если он существует; отсутствие - не ошибка
func (s *employeeService) Delete(ctx context.Context, id int64) error {
	emp, found, err := s.empRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		s.logger.InfoContext(ctx, "employee already absent", slog.Int64("id", id))
		return nil
	}

	if err := s.empRepo.Delete(ctx, emp); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "employee deleted", slog.Int64("id", id))
	return nil
}

// logFailure: ошибки данных клиента - Warn, сбои хранилища - Error
func (s *employeeService) logFailure(ctx context.Context, msg string, emp *domain.Employee, err error) {
	level := slog.LevelError
	if domain.IsValidationError(err) {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, msg, slog.String("employee", emp.String()), slog.Any("error", err))
}
