package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/employee-api/internal/database/dbtest"
	"github.com/employee-api/internal/domain"
	"github.com/employee-api/internal/repository"
)

func newEmployee() *domain.Employee {
	return &domain.Employee{
		FirstName:  "John",
		LastName:   "Daniel",
		Department: "Engineering",
		Gender:     domain.GenderMale,
	}
}

func TestEmployeeRepository_Create(t *testing.T) {
	repo := repository.NewEmployeeRepository(dbtest.New(t))
	ctx := context.Background()

	emp := newEmployee()
	require.NoError(t, repo.Create(ctx, emp))

	assert.Positive(t, emp.ID)
	assert.False(t, emp.CreatedAt.IsZero())
	assert.False(t, emp.LastUpdated.IsZero())

	found, ok, err := repo.FindByID(ctx, emp.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "John", found.FirstName)
	assert.Equal(t, "Daniel", found.LastName)
	assert.Equal(t, "Engineering", found.Department)
	assert.Equal(t, domain.GenderMale, found.Gender)
}

func TestEmployeeRepository_CreateIgnoresPresetID(t *testing.T) {
	repo := repository.NewEmployeeRepository(dbtest.New(t))
	ctx := context.Background()

	first := newEmployee()
	require.NoError(t, repo.Create(ctx, first))

	second := newEmployee()
	second.ID = first.ID
	second.Gender = ""
	require.NoError(t, repo.Create(ctx, second))

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, domain.GenderUnknown, second.Gender)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEmployeeRepository_CreateRejectsInvalidGender(t *testing.T) {
	repo := repository.NewEmployeeRepository(dbtest.New(t))
	ctx := context.Background()

	emp := newEmployee()
	emp.Gender = domain.Gender("male")
	err := repo.Create(ctx, emp)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "unknown gender male")
	assert.True(t, emp.IsNew())

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEmployeeRepository_Update(t *testing.T) {
	repo := repository.NewEmployeeRepository(dbtest.New(t))
	ctx := context.Background()

	emp := newEmployee()
	require.NoError(t, repo.Create(ctx, emp))

	stored, _, err := repo.FindByID(ctx, emp.ID)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	emp.Department = "Finance"
	emp.Gender = domain.GenderUnknown
	require.NoError(t, repo.Update(ctx, emp))

	updated, ok, err := repo.FindByID(ctx, emp.ID)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, stored.ID, updated.ID)
	assert.Equal(t, "Finance", updated.Department)
	assert.Equal(t, domain.GenderUnknown, updated.Gender)
	assert.True(t, stored.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.LastUpdated.After(stored.LastUpdated))
}

func TestEmployeeRepository_UpdateWithoutID(t *testing.T) {
	repo := repository.NewEmployeeRepository(dbtest.New(t))
	ctx := context.Background()

	emp := newEmployee()
	err := repo.Update(ctx, emp)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "empty ID")

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEmployeeRepository_UpdateDeleted(t *testing.T) {
	repo := repository.NewEmployeeRepository(dbtest.New(t))
	ctx := context.Background()

	emp := newEmployee()
	require.NoError(t, repo.Create(ctx, emp))
	require.NoError(t, repo.Delete(ctx, emp))

	err := repo.Update(ctx, emp)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	var pe *domain.DataPersistenceError
	assert.ErrorAs(t, err, &pe)
}

func TestEmployeeRepository_Delete(t *testing.T) {
	repo := repository.NewEmployeeRepository(dbtest.New(t))
	ctx := context.Background()

	emp := newEmployee()
	require.NoError(t, repo.Create(ctx, emp))
	require.NoError(t, repo.Delete(ctx, emp))

	_, ok, err := repo.FindByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// повторное удаление и удаление несохранённого проходят без ошибок
	require.NoError(t, repo.Delete(ctx, emp))
	require.NoError(t, repo.Delete(ctx, newEmployee()))
	require.NoError(t, repo.Delete(ctx, &domain.Employee{ID: 9999}))
}

func TestEmployeeRepository_FindByIDMissing(t *testing.T) {
	repo := repository.NewEmployeeRepository(dbtest.New(t))

	emp, ok, err := repo.FindByID(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, emp)
}

func TestEmployeeRepository_All(t *testing.T) {
	repo := repository.NewEmployeeRepository(dbtest.New(t))
	ctx := context.Background()

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.NotNil(t, all)
	assert.Empty(t, all)

	names := []string{"Ann", "Bob", "Carl"}
	for _, name := range names {
		emp := newEmployee()
		emp.FirstName = name
		require.NoError(t, repo.Create(ctx, emp))
	}

	all, err = repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(names))
	for i, emp := range all {
		assert.Equal(t, names[i], emp.FirstName)
		if i > 0 {
			assert.Greater(t, emp.ID, all[i-1].ID)
		}
	}
}

func TestEmployeeRepository_ClosedDatabase(t *testing.T) {
	db := dbtest.New(t)
	repo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	emp := newEmployee()
	require.NoError(t, repo.Create(ctx, emp))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	var pe *domain.DataPersistenceError

	failed := newEmployee()
	err = repo.Create(ctx, failed)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "create", pe.Op)
	assert.True(t, failed.IsNew())
	assert.True(t, failed.CreatedAt.IsZero())
	assert.True(t, failed.LastUpdated.IsZero())

	_, _, err = repo.FindByID(ctx, emp.ID)
	require.ErrorAs(t, err, &pe)

	_, err = repo.All(ctx)
	require.ErrorAs(t, err, &pe)

	err = repo.Update(ctx, emp)
	require.ErrorAs(t, err, &pe)
	assert.False(t, errors.Is(err, domain.ErrEmployeeNotFound))

	err = repo.Delete(ctx, emp)
	require.ErrorAs(t, err, &pe)
}

func TestEmployeeRepository_CreateFailureRestoresFields(t *testing.T) {
	db := dbtest.New(t)
	repo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	// транзакция открывается, но вставка падает уже после заполнения временных меток
	require.NoError(t, db.Exec("DROP TABLE employees").Error)

	emp := newEmployee()
	emp.ID = 17
	err := repo.Create(ctx, emp)

	var pe *domain.DataPersistenceError
	require.ErrorAs(t, err, &pe)
	assert.True(t, emp.IsNew())
	assert.True(t, emp.CreatedAt.IsZero())
	assert.True(t, emp.LastUpdated.IsZero())
}
