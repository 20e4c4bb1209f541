package leave

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewBalance opens a balance for the year. Types without accrual start with
// their full yearly allowance; accruing types start empty.
func NewBalance(lt LeaveType, employeeID uuid.UUID, year int) *Balance {
	b := &Balance{
		ID:          uuid.New(),
		CompanyID:   lt.CompanyID,
		EmployeeID:  employeeID,
		LeaveTypeID: lt.ID,
		Year:        year,
	}
	if lt.AccrualMethod == AccrualNone {
		b.OpeningBalance = lt.MaxDaysPerYear
		b.CurrentBalance = lt.MaxDaysPerYear
	}
	return b
}

// Reserve holds days for a submitted request.
func (b *Balance) Reserve(days decimal.Decimal) {
	b.Pending = b.Pending.Add(days)
	b.CurrentBalance = b.CurrentBalance.Sub(days)
}

// Consume turns reserved days into used days once a request is approved.
func (b *Balance) Consume(days decimal.Decimal) {
	b.Pending = b.Pending.Sub(days)
	b.Used = b.Used.Add(days)
}

// Release returns reserved days after a rejection or cancellation.
func (b *Balance) Release(days decimal.Decimal) {
	b.Pending = b.Pending.Sub(days)
	b.CurrentBalance = b.CurrentBalance.Add(days)
}

func (b *Balance) Accrue(days decimal.Decimal) {
	b.Accrued = b.Accrued.Add(days)
	b.CurrentBalance = b.CurrentBalance.Add(days)
}

// Expected recomputes the balance from its parts, for consistency checks.
func (b *Balance) Expected() decimal.Decimal {
	return b.OpeningBalance.
		Add(b.Accrued).
		Add(b.CarriedForward).
		Sub(b.Used).
		Sub(b.Pending).
		Sub(b.Encashed).
		Sub(b.Lapsed)
}
