package domain

import "strings"

// Gender - перечисление полов сотрудника, хранится в БД по имени
type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = "UNKNOWN"
)

// Genders содержит все допустимые значения в порядке объявления
var Genders = []Gender{GenderMale, GenderFemale, GenderUnknown}

// ParseGender ищет значение без учёта регистра
func ParseGender(s string) (Gender, error) {
	for _, g := range Genders {
		if strings.EqualFold(s, string(g)) {
			return g, nil
		}
	}
	return "", NewValidationError("Invalid attribute: unknown gender %s", s)
}

func (g Gender) String() string {
	return string(g)
}

// IsValid проверяет каноническое написание значения
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}
