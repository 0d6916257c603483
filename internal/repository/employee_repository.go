package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/employee-api/internal/domain"
)

// колонки, которые переписывает Update; created_at не трогаем никогда
var updatableColumns = []string{"first_name", "last_name", "department", "gender", "last_updated"}

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, emp *domain.Employee) error
	FindByID(ctx context.Context, id int64) (*domain.Employee, bool, error)
	All(ctx context.Context) ([]domain.Employee, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create всегда вставляет новую строку: ранее присвоенный ID сбрасывается
func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	if emp.Gender == "" {
		emp.Gender = domain.GenderUnknown
	}
	if !emp.Gender.IsValid() {
		return domain.NewValidationError("Invalid attribute: unknown gender %s", emp.Gender)
	}

	// при ошибке вставки возвращаем поля, которые успел заполнить gorm
	createdAt, lastUpdated := emp.CreatedAt, emp.LastUpdated
	emp.ID = 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(emp).Error
	})
	if err != nil {
		emp.ID = 0
		emp.CreatedAt, emp.LastUpdated = createdAt, lastUpdated
		return persistenceError("create", err)
	}
	return nil
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	if emp.IsNew() {
		return domain.NewValidationError("Update called with empty ID field")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(emp).Select(updatableColumns).Updates(emp)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrEmployeeNotFound
		}
		return nil
	})
	if err != nil {
		return persistenceError("update", err)
	}
	return nil
}

// Delete идемпотентен: отсутствие строки ошибкой не считается
func (r *employeeRepository) Delete(ctx context.Context, emp *domain.Employee) error {
	if emp.IsNew() {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&domain.Employee{}, emp.ID).Error
	})
	if err != nil {
		return persistenceError("delete", err)
	}
	return nil
}

// FindByID возвращает found=false без ошибки, если строки нет
func (r *employeeRepository) FindByID(ctx context.Context, id int64) (*domain.Employee, bool, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&employees).Error
	if err != nil {
		return nil, false, persistenceError("find", err)
	}
	if len(employees) == 0 {
		return nil, false, nil
	}
	return &employees[0], true, nil
}

func (r *employeeRepository) All(ctx context.Context) ([]domain.Employee, error) {
	employees := []domain.Employee{}
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&employees).Error
	if err != nil {
		return nil, persistenceError("list", err)
	}
	return employees, nil
}

func persistenceError(op string, err error) error {
	return &domain.DataPersistenceError{Op: op, Err: err}
}
