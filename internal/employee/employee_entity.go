package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Employee struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID  `gorm:"type:uuid;index"`
	EmployeeNumber   string     `gorm:"size:32"`
	FullName         string     `gorm:"size:255;not null"`
	Email            string     `gorm:"size:255"`
	Phone            string     `gorm:"size:32"`
	ManagerID        *uuid.UUID `gorm:"type:uuid"`
	DepartmentID     *uuid.UUID `gorm:"type:uuid"`
	JobTitle         string     `gorm:"size:255"`
	Nationality      string     `gorm:"size:64"`
	HireDate         time.Time  `gorm:"type:date"`
	EmploymentStatus string     `gorm:"size:32;default:active"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (e Employee) IsActive() bool {
	return e.EmploymentStatus == "" || e.EmploymentStatus == StatusActive
}
