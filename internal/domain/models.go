package domain

import (
	"fmt"
	"time"
)

// Employee представляет сотрудника
type Employee struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName   string    `json:"first_name" gorm:"type:varchar(255);not null"`
	LastName    string    `json:"last_name" gorm:"type:varchar(255);not null"`
	Department  string    `json:"department" gorm:"type:varchar(255);not null"`
	Gender      Gender    `json:"gender" gorm:"type:varchar(16);not null;default:UNKNOWN"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	LastUpdated time.Time `json:"last_updated" gorm:"column:last_updated;autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// IsNew сообщает, что запись ещё не сохранена
func (e *Employee) IsNew() bool {
	return e.ID == 0
}

func (e *Employee) String() string {
	id := "None"
	if !e.IsNew() {
		id = fmt.Sprint(e.ID)
	}
	return fmt.Sprintf("<Employee %s %s id=[%s]>", e.FirstName, e.LastName, id)
}
