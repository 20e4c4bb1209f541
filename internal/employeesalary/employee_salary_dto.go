package employeesalary

import "github.com/shopspring/decimal"

const dateLayout = "2006-01-02"

type CreateEmployeeSalaryRequest struct {
	EmployeeID              string `json:"employee_id" binding:"required,uuid"`
	BasicSalary             string `json:"basic_salary" binding:"required,numeric"`
	HousingAllowance        string `json:"housing_allowance" binding:"omitempty,numeric"`
	TransportationAllowance string `json:"transportation_allowance" binding:"omitempty,numeric"`
	OtherDeductions         string `json:"other_deductions" binding:"omitempty,numeric"`
	EffectiveDate           string `json:"effective_date" binding:"required"`
}

// UpdateEmployeeSalaryRequest records a new revision for the same employee.
type UpdateEmployeeSalaryRequest struct {
	BasicSalary             string `json:"basic_salary" binding:"required,numeric"`
	HousingAllowance        string `json:"housing_allowance" binding:"omitempty,numeric"`
	TransportationAllowance string `json:"transportation_allowance" binding:"omitempty,numeric"`
	OtherDeductions         string `json:"other_deductions" binding:"omitempty,numeric"`
	EffectiveDate           string `json:"effective_date" binding:"required"`
}

type ListFilter struct {
	EmployeeID string
	Sort       string
}

type EmployeeSalaryResponse struct {
	ID                      string `json:"id"`
	EmployeeID              string `json:"employee_id"`
	EmployeeName            string `json:"employee_name,omitempty"`
	BasicSalary             string `json:"basic_salary"`
	HousingAllowance        string `json:"housing_allowance"`
	TransportationAllowance string `json:"transportation_allowance"`
	OtherDeductions         string `json:"other_deductions"`
	EffectiveDate           string `json:"effective_date"`
}

type components struct {
	basic, housing, transport, deductions decimal.Decimal
}

func mapToResponse(s EmployeeSalary) EmployeeSalaryResponse {
	resp := EmployeeSalaryResponse{
		ID:                      s.ID.String(),
		EmployeeID:              s.EmployeeID.String(),
		BasicSalary:             s.BasicSalary.StringFixed(2),
		HousingAllowance:        s.HousingAllowance.StringFixed(2),
		TransportationAllowance: s.TransportationAllowance.StringFixed(2),
		OtherDeductions:         s.OtherDeductions.StringFixed(2),
		EffectiveDate:           s.EffectiveDate.Format(dateLayout),
	}
	if s.Employee != nil {
		resp.EmployeeName = s.Employee.FullName
	}
	return resp
}
