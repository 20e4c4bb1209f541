package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusDraft    = "Draft"
	StatusApproved = "Approved"
	StatusPaid     = "Paid"
)

const (
	ComponentEarning   = "Earning"
	ComponentDeduction = "Deduction"
)

// Payroll is one employee-month. Rows are soft-deleted so the period can be
// generated again after a draft is discarded.
type Payroll struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID    `gorm:"type:uuid;not null;index:idx_payroll_company_status"`
	EmployeeID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_period,where:deleted_at IS NULL"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	Year        int       `gorm:"not null;uniqueIndex:uq_payroll_period,where:deleted_at IS NULL"`
	Month       int       `gorm:"not null;uniqueIndex:uq_payroll_period,where:deleted_at IS NULL"`
	PeriodStart time.Time `gorm:"type:date;not null"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`

	BasicSalary             decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	HousingAllowance        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TransportationAllowance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OvertimeHours           decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	OvertimePay             decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalGross              decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	GOSIEmployee            decimal.Decimal `gorm:"column:gosi_employee;type:numeric(14,2);not null;default:0"`
	GOSIEmployer            decimal.Decimal `gorm:"column:gosi_employer;type:numeric(14,2);not null;default:0"`
	AbsenceDeduction        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OtherDeductions         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalDeductions         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetSalary               decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	DaysWorked              int             `gorm:"not null;default:0"`
	DaysAbsent              int             `gorm:"not null;default:0"`

	Status     string     `gorm:"type:varchar(20);not null;default:'Draft';index:idx_payroll_company_status"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time
	PaidBy     *uuid.UUID `gorm:"type:uuid"`
	PaidAt     *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Components []Component `gorm:"foreignKey:PayrollID"`
}

type Component struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PayrollID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type      string          `gorm:"column:component_type;type:varchar(20);not null"`
	Name      string          `gorm:"column:component_name;type:varchar(120);not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Sequence  int             `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (Component) TableName() string {
	return "payroll_components"
}

type EmployeeRef struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	FullName       string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
