package employeesalary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeSalary is one revision of an employee's pay package. Revisions are
// append-only; the latest one effective on a date is the one that applies.
type EmployeeSalary struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID              uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_employee_salary_effective"`
	BasicSalary             decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	HousingAllowance        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TransportationAllowance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OtherDeductions         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	EffectiveDate           time.Time       `gorm:"type:date;not null;uniqueIndex:uq_employee_salary_effective"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
	Employee                *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
