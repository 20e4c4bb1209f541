package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MethodInterestFree    = "Interest Free"
	MethodFlatRate        = "Flat Rate"
	MethodReducingBalance = "Reducing Balance"
)

const (
	StatusDraft           = "Draft"
	StatusSubmitted       = "Submitted"
	StatusManagerApproved = "Manager Approved"
	StatusHRApproved      = "HR Approved"
	StatusFinanceApproved = "Finance Approved"
	StatusDisbursed       = "Disbursed"
	StatusActive          = "Active"
	StatusPaidOff         = "Paid Off"
	StatusRejected        = "Rejected"
)

type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_loan_product_code"`
	Code          string          `gorm:"size:32;not null;uniqueIndex:uq_loan_product_code"`
	Name          string          `gorm:"size:255;not null"`
	Method        string          `gorm:"column:interest_method;size:32;not null"`
	AnnualRate    decimal.Decimal `gorm:"type:numeric(7,4);not null;default:0"`
	AdminFee      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	MinAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	MaxAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	MinTermMonths int             `gorm:"not null"`
	MaxTermMonths int             `gorm:"not null"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "loan_products"
}

// Account is one employee loan. Method, rate and fee are copied from the
// product at application time so later product edits do not reprice it.
type Account struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID            uuid.UUID       `gorm:"type:uuid;not null"`
	Principal            decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TermMonths           int             `gorm:"not null"`
	Method               string          `gorm:"column:interest_method;size:32;not null"`
	AnnualRate           decimal.Decimal `gorm:"type:numeric(7,4);not null"`
	AdminFee             decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	InstallmentAmount    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalLoanCost        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalInterest        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OutstandingPrincipal decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OutstandingInterest  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OutstandingFee       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalPaid            decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	InstallmentsPaid     int             `gorm:"not null;default:0"`
	Purpose              string          `gorm:"type:text"`
	Status               string          `gorm:"size:32;not null;index"`

	SubmittedAt         *time.Time
	ManagerApprovedBy   *uuid.UUID `gorm:"type:uuid"`
	ManagerApprovedAt   *time.Time
	HRApprovedBy        *uuid.UUID `gorm:"column:hr_approved_by;type:uuid"`
	HRApprovedAt        *time.Time `gorm:"column:hr_approved_at"`
	FinanceApprovedBy   *uuid.UUID `gorm:"type:uuid"`
	FinanceApprovedAt   *time.Time
	RejectedBy          *uuid.UUID `gorm:"type:uuid"`
	RejectedAt          *time.Time
	RejectedAtStage     string `gorm:"size:32"`
	RejectionReason     string `gorm:"type:text"`
	DisbursedBy         *uuid.UUID `gorm:"type:uuid"`
	DisbursementDate    *time.Time `gorm:"type:date"`
	FirstInstallmentDue *time.Time `gorm:"type:date"`
	MaturityDate        *time.Time `gorm:"type:date"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Product  *Product     `gorm:"foreignKey:ProductID;references:ID"`
	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Account) TableName() string {
	return "loan_accounts"
}

// Repayment rows are append-only.
type Repayment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null"`
	LoanID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PrincipalPart decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	InterestPart  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	FeePart       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PaidAt        time.Time       `gorm:"type:date;not null"`
	Reference     string          `gorm:"size:64"`
	RecordedBy    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
}

func (Repayment) TableName() string {
	return "loan_repayments"
}

type EmployeeRef struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string
	FullName       string
}

func (EmployeeRef) TableName() string {
	return "employees"
}
