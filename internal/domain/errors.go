package domain

import (
	"errors"
	"fmt"
)

// ErrEmployeeNotFound возвращается, когда обновляемой строки больше нет
var ErrEmployeeNotFound = errors.New("employee not found")

// ValidationError - некорректные входные данные, никогда не повторяется
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DataPersistenceError - сбой операции с хранилищем, транзакция уже откатена
type DataPersistenceError struct {
	Op  string
	Err error
}

func (e *DataPersistenceError) Error() string {
	return fmt.Sprintf("%s employee: %v", e.Op, e.Err)
}

func (e *DataPersistenceError) Unwrap() error {
	return e.Err
}

// Cause для совместимости с github.com/pkg/errors
func (e *DataPersistenceError) Cause() error {
	return e.Err
}

// IsValidationError проверяет, относится ли ошибка к ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
