package dto

import (
	"github.com/employee-api/internal/domain"
)

// EmployeeRequest - промежуточная структура для проверки тела запроса
type EmployeeRequest struct {
	FirstName  *string `json:"first_name" validate:"required,min=1,max=255"`
	LastName   *string `json:"last_name" validate:"required,min=1,max=255"`
	Department *string `json:"department" validate:"required,min=1,max=255"`
	Gender     *string `json:"gender" validate:"omitempty,gender"`
}

// EmployeeResponse - сериализованный сотрудник
type EmployeeResponse struct {
	ID         *int64 `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
	Gender     string `json:"gender"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse - ответ проверки живости
type HealthResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// IndexResponse - метаданные сервиса
type IndexResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Paths   string `json:"paths"`
}

// NewEmployeeRequest строит тело запроса на создание из сотрудника
func NewEmployeeRequest(emp *domain.Employee) EmployeeRequest {
	firstName, lastName, department := emp.FirstName, emp.LastName, emp.Department
	gender := emp.Gender.String()
	return EmployeeRequest{
		FirstName:  &firstName,
		LastName:   &lastName,
		Department: &department,
		Gender:     &gender,
	}
}

// Serialize превращает сотрудника в представление для ответа
func Serialize(emp *domain.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		Department: emp.Department,
		Gender:     emp.Gender.String(),
	}
	if !emp.IsNew() {
		id := emp.ID
		resp.ID = &id
	}
	return resp
}

// SerializeAll не возвращает nil: пустой список кодируется как []
func SerializeAll(employees []domain.Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i := range employees {
		resp[i] = Serialize(&employees[i])
	}
	return resp
}
