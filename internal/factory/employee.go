// Package factory генерирует правдоподобных сотрудников для тестов и примеров данных.
package factory

import (
	"github.com/jaswdr/faker"

	"github.com/employee-api/internal/domain"
)

// Departments - отделы, из которых выбирает фабрика
var Departments = []string{"Finance", "Engineering", "HR", "Marketing"}

type EmployeeFactory struct {
	fake faker.Faker
}

func NewEmployeeFactory() *EmployeeFactory {
	return &EmployeeFactory{fake: faker.New()}
}

// Employee возвращает несохранённого сотрудника (ID == 0)
func (f *EmployeeFactory) Employee() *domain.Employee {
	person := f.fake.Person()
	return &domain.Employee{
		FirstName:  person.FirstName(),
		LastName:   person.LastName(),
		Department: f.fake.RandomStringElement(Departments),
		Gender:     domain.Genders[f.fake.IntBetween(0, len(domain.Genders)-1)],
	}
}

func (f *EmployeeFactory) Employees(n int) []*domain.Employee {
	employees := make([]*domain.Employee, n)
	for i := range employees {
		employees[i] = f.Employee()
	}
	return employees
}
