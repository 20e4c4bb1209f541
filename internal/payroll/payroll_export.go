package payroll

import (
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Payroll"

var exportHeader = []any{
	"Employee", "Year", "Month", "Status",
	"Basic Salary", "Housing Allowance", "Transportation Allowance", "Overtime Hours", "Overtime Pay",
	"Total Gross", "GOSI Employee", "GOSI Employer", "Absence Deduction", "Other Deductions",
	"Total Deductions", "Net Salary", "Days Worked", "Days Absent",
}

// exportWorkbook writes one row per payroll under a header row and returns
// the XLSX bytes.
func exportWorkbook(payrolls []Payroll) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	for i, p := range payrolls {
		name := p.EmployeeID.String()
		if p.Employee != nil && p.Employee.FullName != "" {
			name = p.Employee.FullName
		}
		row := []any{
			name, p.Year, p.Month, p.Status,
			p.BasicSalary.InexactFloat64(),
			p.HousingAllowance.InexactFloat64(),
			p.TransportationAllowance.InexactFloat64(),
			p.OvertimeHours.InexactFloat64(),
			p.OvertimePay.InexactFloat64(),
			p.TotalGross.InexactFloat64(),
			p.GOSIEmployee.InexactFloat64(),
			p.GOSIEmployer.InexactFloat64(),
			p.AbsenceDeduction.InexactFloat64(),
			p.OtherDeductions.InexactFloat64(),
			p.TotalDeductions.InexactFloat64(),
			p.NetSalary.InexactFloat64(),
			p.DaysWorked, p.DaysAbsent,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
