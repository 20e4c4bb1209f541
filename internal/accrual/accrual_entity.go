package accrual

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Accrual is one posting of earned days. At most one row exists per
// employee, leave type and month. CreditedAt stays nil until the days have
// been added to the matching balance.
type Accrual struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_leave_accruals_period"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_accrual"`
	LeaveTypeID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_accrual"`
	Year        int             `gorm:"not null;uniqueIndex:uq_leave_accrual;index:idx_leave_accruals_period"`
	Month       int             `gorm:"not null;uniqueIndex:uq_leave_accrual;index:idx_leave_accruals_period"`
	Days        decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	CreditedAt  *time.Time
	CreatedAt   time.Time
}

func (Accrual) TableName() string { return "leave_accruals" }

// Summary reports the outcome of one monthly run.
type Summary struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Created   int    `json:"created"`
	Skipped   int    `json:"skipped"`
	Retried   int    `json:"retried"`
	Failed    int    `json:"failed"`
	TotalDays string `json:"total_days"`
}
