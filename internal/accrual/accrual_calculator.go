package accrual

import (
	"time"

	"go-ess/internal/leave"
	"go-ess/internal/shared/money"

	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// MonthlyAccrual returns the days an employee earns on a leave type for the
// month ending at asOf. Employees who join after asOf earn nothing.
func MonthlyAccrual(joinDate time.Time, lt leave.LeaveType, asOf time.Time) decimal.Decimal {
	if !joinDate.IsZero() && joinDate.After(asOf) {
		return decimal.Zero
	}

	switch lt.AccrualMethod {
	case leave.AccrualMonthly:
		return money.Round2(lt.AccrualRate)
	case leave.AccrualYearly:
		return money.Round2(lt.MaxDaysPerYear.Div(monthsPerYear))
	case leave.AccrualProrated:
		if MonthsOfService(joinDate, asOf) < lt.MinServiceMonths {
			return decimal.Zero
		}
		return money.Round2(lt.MaxDaysPerYear.Div(monthsPerYear))
	}
	return decimal.Zero
}

// MonthsOfService counts whole months between join and asOf. A month is
// complete once asOf reaches the join day of month.
func MonthsOfService(join, asOf time.Time) int {
	if join.IsZero() || !asOf.After(join) {
		return 0
	}
	months := (asOf.Year()-join.Year())*12 + int(asOf.Month()) - int(join.Month())
	if asOf.Day() < join.Day() && asOf.Day() < lastDay(asOf) {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// MonthEnd is the last calendar day of the month, used as the accrual date.
func MonthEnd(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}

func lastDay(t time.Time) int {
	return MonthEnd(t.Year(), int(t.Month())).Day()
}
