package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/employee-api/internal/domain"
	"github.com/employee-api/internal/service"
)

type mockEmployeeRepo struct {
	employees map[int64]*domain.Employee
	nextID    int64
	deleted   []int64
	err       error
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{
		employees: make(map[int64]*domain.Employee),
		nextID:    1,
	}
}

func (m *mockEmployeeRepo) Create(ctx context.Context, emp *domain.Employee) error {
	if m.err != nil {
		return m.err
	}
	emp.ID = m.nextID
	m.nextID++
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepo) Update(ctx context.Context, emp *domain.Employee) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.employees[emp.ID]; !ok {
		return &domain.DataPersistenceError{Op: "update", Err: domain.ErrEmployeeNotFound}
	}
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepo) Delete(ctx context.Context, emp *domain.Employee) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, emp.ID)
	delete(m.employees, emp.ID)
	return nil
}

func (m *mockEmployeeRepo) FindByID(ctx context.Context, id int64) (*domain.Employee, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	emp, ok := m.employees[id]
	return emp, ok, nil
}

func (m *mockEmployeeRepo) All(ctx context.Context) ([]domain.Employee, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []domain.Employee{}
	for id := int64(1); id < m.nextID; id++ {
		if emp, ok := m.employees[id]; ok {
			result = append(result, *emp)
		}
	}
	return result, nil
}

func newService(repo *mockEmployeeRepo) service.EmployeeService {
	return service.NewEmployeeService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEmployeeService_CreateAndGet(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newService(repo)
	ctx := context.Background()

	emp := &domain.Employee{FirstName: "John", LastName: "Daniel", Department: "HR", Gender: domain.GenderMale}
	require.NoError(t, svc.Create(ctx, emp))
	assert.Equal(t, int64(1), emp.ID)

	got, found, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "John", got.FirstName)

	_, found, err = svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEmployeeService_List(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newService(repo)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, svc.Create(ctx, &domain.Employee{FirstName: "Ann"}))
	require.NoError(t, svc.Create(ctx, &domain.Employee{FirstName: "Bob"}))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ann", list[0].FirstName)
	assert.Equal(t, "Bob", list[1].FirstName)
}

func TestEmployeeService_Update(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newService(repo)
	ctx := context.Background()

	emp := &domain.Employee{FirstName: "John"}
	require.NoError(t, svc.Create(ctx, emp))

	emp.Department = "Finance"
	require.NoError(t, svc.Update(ctx, emp))
	assert.Equal(t, "Finance", repo.employees[emp.ID].Department)

	err := svc.Update(ctx, &domain.Employee{ID: 99})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestEmployeeService_Delete(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newService(repo)
	ctx := context.Background()

	emp := &domain.Employee{FirstName: "John"}
	require.NoError(t, svc.Create(ctx, emp))

	require.NoError(t, svc.Delete(ctx, emp.ID))
	_, found, err := svc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.False(t, found)

	// отсутствующий сотрудник: репозиторий Delete не вызывается
	require.NoError(t, svc.Delete(ctx, emp.ID))
	assert.Equal(t, []int64{emp.ID}, repo.deleted)
}

func TestEmployeeService_PropagatesErrors(t *testing.T) {
	repo := newMockEmployeeRepo()
	repo.err = &domain.DataPersistenceError{Op: "list", Err: errors.New("connection refused")}
	svc := newService(repo)
	ctx := context.Background()

	var pe *domain.DataPersistenceError

	_, err := svc.List(ctx)
	assert.ErrorAs(t, err, &pe)

	_, _, err = svc.Get(ctx, 1)
	assert.ErrorAs(t, err, &pe)

	emp := &domain.Employee{FirstName: "John"}
	assert.ErrorAs(t, svc.Create(ctx, emp), &pe)
	assert.True(t, emp.IsNew())

	assert.ErrorAs(t, svc.Delete(ctx, 1), &pe)
}

func TestEmployeeService_FailureLogLevel(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"validation", domain.NewValidationError("Invalid attribute: unknown gender male"), "level=WARN"},
		{"persistence", &domain.DataPersistenceError{Op: "create", Err: errors.New("disk full")}, "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			repo := newMockEmployeeRepo()
			repo.err = tt.err
			svc := service.NewEmployeeService(repo, slog.New(slog.NewTextHandler(&buf, nil)))

			require.Error(t, svc.Create(ctx, &domain.Employee{FirstName: "John"}))
			assert.Contains(t, buf.String(), tt.level+` msg="error creating employee"`)
		})
	}
}
