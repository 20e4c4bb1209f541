package leave

import (
	"time"

	"go-ess/internal/workflow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccrualNone     = "None"
	AccrualMonthly  = "Monthly"
	AccrualYearly   = "Yearly"
	AccrualProrated = "Prorated"
)

type LeaveType struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_type_code"`
	Code             string          `gorm:"size:30;not null;uniqueIndex:uq_leave_type_code"`
	Name             string          `gorm:"size:100;not null"`
	MaxDaysPerYear   decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	AccrualMethod    string          `gorm:"size:20;not null;default:'None'"`
	AccrualRate      decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	MinServiceMonths int             `gorm:"not null;default:0"`
	WorkflowID       *uuid.UUID      `gorm:"type:uuid"`
	IsActive         bool            `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TracksBalance reports whether requests of this type draw on a balance.
// Types with no accrual and no yearly cap (unpaid leave) do not.
func (t LeaveType) TracksBalance() bool {
	return t.AccrualMethod != AccrualNone || t.MaxDaysPerYear.IsPositive()
}

type Leave struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_leaves_company_status"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`
	LeaveTypeID uuid.UUID       `gorm:"type:uuid;not null"`
	StartDate   time.Time       `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate     time.Time       `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays   decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Reason      string          `gorm:"type:text"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null"`

	workflow.State `gorm:"embedded"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`
}

// OwnedBy reports whether actorID is the requester or whoever filed the
// leave on their behalf.
func (l Leave) OwnedBy(actorID string) bool {
	return actorID != "" && (l.EmployeeID.String() == actorID || l.CreatedBy.String() == actorID)
}

// Balance is one employee's position for one leave type and year.
// CurrentBalance is maintained incrementally and never recomputed.
type Balance struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;not null"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance"`
	LeaveTypeID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance"`
	Year           int             `gorm:"not null;uniqueIndex:uq_leave_balance"`
	OpeningBalance decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Accrued        decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CarriedForward decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Used           decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Pending        decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Encashed       decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Lapsed         decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CurrentBalance decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Balance) TableName() string { return "leave_balances" }
