package payroll

import (
	"strings"

	"go-ess/internal/attendance"
	"go-ess/internal/shared/money"

	"github.com/shopspring/decimal"
)

var (
	daysPerMonth       = decimal.NewFromInt(30)
	hoursPerDay        = decimal.NewFromInt(8)
	overtimeMultiplier = decimal.NewFromFloat(1.5)

	gosiEmployeeSaudi = decimal.NewFromFloat(9.75)
	gosiEmployerSaudi = decimal.NewFromInt(12)
	gosiOther         = decimal.NewFromInt(2)
)

// TimeLog is the part of a daily attendance row the calculator reads.
type TimeLog struct {
	Status        string
	OvertimeHours decimal.Decimal
}

type Input struct {
	BasicSalary             decimal.Decimal
	HousingAllowance        decimal.Decimal
	TransportationAllowance decimal.Decimal
	OtherDeductions         decimal.Decimal
	Nationality             string
	TimeLogs                []TimeLog
}

// Result holds every figure rounded to two places. NetSalary is derived from
// the rounded parts, so TotalGross - TotalDeductions == NetSalary exactly.
type Result struct {
	BasicSalary             decimal.Decimal
	HousingAllowance        decimal.Decimal
	TransportationAllowance decimal.Decimal
	DailyRate               decimal.Decimal
	HourlyRate              decimal.Decimal
	OvertimeHours           decimal.Decimal
	OvertimePay             decimal.Decimal
	AbsenceDeduction        decimal.Decimal
	OtherDeductions         decimal.Decimal
	TotalGross              decimal.Decimal
	GOSIEmployee            decimal.Decimal
	GOSIEmployer            decimal.Decimal
	TotalDeductions         decimal.Decimal
	NetSalary               decimal.Decimal
	DaysWorked              int
	DaysAbsent              int
}

// Calculate computes one employee-month. Only logs explicitly marked Absent
// count as absence; a day without a log is neither worked nor absent.
func Calculate(in Input) Result {
	basic := in.BasicSalary
	dailyRate := basic.Div(daysPerMonth)
	hourlyRate := dailyRate.Div(hoursPerDay)

	overtimeHours := decimal.Zero
	var worked, absent int
	for _, tl := range in.TimeLogs {
		overtimeHours = overtimeHours.Add(tl.OvertimeHours)
		switch tl.Status {
		case attendance.StatusAbsent:
			absent++
		case attendance.StatusPresent, attendance.StatusLate:
			worked++
		}
	}

	// basic * hours * 1.5 / 240 keeps full precision until the final round.
	overtimePay := money.Round2(basic.Mul(overtimeHours).Mul(overtimeMultiplier).Div(daysPerMonth.Mul(hoursPerDay)))
	absenceDeduction := money.Round2(basic.Mul(decimal.NewFromInt(int64(absent))).Div(daysPerMonth))

	employeeRate, employerRate := gosiRates(in.Nationality)
	gosiEmployee := money.Round2(money.Pct(basic, employeeRate))
	gosiEmployer := money.Round2(money.Pct(basic, employerRate))

	r := Result{
		BasicSalary:             money.Round2(basic),
		HousingAllowance:        money.Round2(in.HousingAllowance),
		TransportationAllowance: money.Round2(in.TransportationAllowance),
		DailyRate:               money.Round2(dailyRate),
		HourlyRate:              money.Round2(hourlyRate),
		OvertimeHours:           money.Round2(overtimeHours),
		OvertimePay:             overtimePay,
		AbsenceDeduction:        absenceDeduction,
		OtherDeductions:         money.Round2(in.OtherDeductions),
		GOSIEmployee:            gosiEmployee,
		GOSIEmployer:            gosiEmployer,
		DaysWorked:              worked,
		DaysAbsent:              absent,
	}
	r.TotalGross = r.BasicSalary.Add(r.HousingAllowance).Add(r.TransportationAllowance).Add(r.OvertimePay)
	r.TotalDeductions = r.GOSIEmployee.Add(r.AbsenceDeduction).Add(r.OtherDeductions)
	r.NetSalary = r.TotalGross.Sub(r.TotalDeductions)
	return r
}

func gosiRates(nationality string) (employee, employer decimal.Decimal) {
	if strings.EqualFold(strings.TrimSpace(nationality), "saudi") {
		return gosiEmployeeSaudi, gosiEmployerSaudi
	}
	return gosiOther, gosiOther
}

// Components lists the payslip lines in display order.
func (r Result) Components() []Component {
	lines := []struct {
		kind, name string
		amount     decimal.Decimal
	}{
		{ComponentEarning, "Basic Salary", r.BasicSalary},
		{ComponentEarning, "Housing Allowance", r.HousingAllowance},
		{ComponentEarning, "Transportation Allowance", r.TransportationAllowance},
		{ComponentEarning, "Overtime Pay", r.OvertimePay},
		{ComponentDeduction, "GOSI Employee Share", r.GOSIEmployee},
		{ComponentDeduction, "Absence Deduction", r.AbsenceDeduction},
		{ComponentDeduction, "Other Deductions", r.OtherDeductions},
	}
	out := make([]Component, len(lines))
	for i, l := range lines {
		out[i] = Component{Type: l.kind, Name: l.name, Amount: l.amount, Sequence: i + 1}
	}
	return out
}

// apply copies the computed figures onto a payroll row.
func (r Result) apply(p *Payroll) {
	p.BasicSalary = r.BasicSalary
	p.HousingAllowance = r.HousingAllowance
	p.TransportationAllowance = r.TransportationAllowance
	p.OvertimeHours = r.OvertimeHours
	p.OvertimePay = r.OvertimePay
	p.TotalGross = r.TotalGross
	p.GOSIEmployee = r.GOSIEmployee
	p.GOSIEmployer = r.GOSIEmployer
	p.AbsenceDeduction = r.AbsenceDeduction
	p.OtherDeductions = r.OtherDeductions
	p.TotalDeductions = r.TotalDeductions
	p.NetSalary = r.NetSalary
	p.DaysWorked = r.DaysWorked
	p.DaysAbsent = r.DaysAbsent
}
