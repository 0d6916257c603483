package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/employee-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// в сообщениях используем имена ключей JSON, а не полей структуры
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseGender(fl.Field().String())
		return err == nil
	})

	return v
}

// Deserialize заполняет сотрудника из разобранного JSON-тела.
// При ошибке target остаётся нетронутым.
func Deserialize(target *domain.Employee, payload any) error {
	data, ok := payload.(map[string]any)
	if !ok {
		return domain.NewValidationError("Invalid Employee: body of request contained bad or no data")
	}

	var req EmployeeRequest
	fields := []struct {
		key string
		dst **string
	}{
		{"first_name", &req.FirstName},
		{"last_name", &req.LastName},
		{"department", &req.Department},
		{"gender", &req.Gender},
	}
	for _, f := range fields {
		raw, ok := data[f.key]
		if !ok || raw == nil {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return domain.NewValidationError("Invalid Employee: %s must be a string", f.key)
		}
		*f.dst = &s
	}

	if err := validate.Struct(&req); err != nil {
		return translate(err)
	}

	gender := domain.GenderUnknown
	if req.Gender != nil {
		g, err := domain.ParseGender(*req.Gender)
		if err != nil {
			return err
		}
		gender = g
	}

	target.FirstName = *req.FirstName
	target.LastName = *req.LastName
	target.Department = *req.Department
	target.Gender = gender
	return nil
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError("Invalid Employee: %v", err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return domain.NewValidationError("Invalid Employee: missing %s", fe.Field())
	case "min":
		return domain.NewValidationError("Invalid Employee: %s must not be empty", fe.Field())
	case "max":
		return domain.NewValidationError("Invalid Employee: %s must be at most %s characters", fe.Field(), fe.Param())
	case "gender":
		return domain.NewValidationError("Invalid attribute: unknown gender %v", fe.Value())
	default:
		return domain.NewValidationError("Invalid Employee: %s failed on %s", fe.Field(), fe.Tag())
	}
}
