package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/employee-api/internal/domain"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Gender
	}{
		{"MALE", domain.GenderMale},
		{"male", domain.GenderMale},
		{"Female", domain.GenderFemale},
		{"unknown", domain.GenderUnknown},
		{"uNkNoWn", domain.GenderUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseGender(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestParseGender_Invalid(t *testing.T) {
	for _, in := range []string{"bogus", "", "M", "males"} {
		_, err := domain.ParseGender(in)
		require.Error(t, err, in)
		assert.True(t, domain.IsValidationError(err))
	}
}

func TestGender_IsValid(t *testing.T) {
	assert.False(t, domain.Gender("male").IsValid())
	assert.False(t, domain.Gender("").IsValid())
	assert.True(t, domain.GenderFemale.IsValid())
}

func TestEmployee_String(t *testing.T) {
	emp := &domain.Employee{FirstName: "John", LastName: "Daniel", Gender: domain.GenderMale}
	assert.Equal(t, "<Employee John Daniel id=[None]>", emp.String())
	assert.True(t, emp.IsNew())

	emp.ID = 7
	assert.Equal(t, "<Employee John Daniel id=[7]>", emp.String())
	assert.False(t, emp.IsNew())
}
