package payroll

import "time"

const dateLayout = "2006-01-02"

type GenerateRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required"`
	Month      int    `json:"month" binding:"required"`
}

type BatchRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

type ListFilter struct {
	EmployeeID string
	Status     string
	Year       int
	Month      int
	Sort       string
}

type BatchError struct {
	EmployeeID string `json:"employee_id"`
	Message    string `json:"message"`
}

type BatchSummary struct {
	Year     int          `json:"year"`
	Month    int          `json:"month"`
	Created  int          `json:"created"`
	Skipped  int          `json:"skipped"`
	Failed   int          `json:"failed"`
	TotalNet string       `json:"total_net"`
	Errors   []BatchError `json:"errors,omitempty"`
}

type PayrollResponse struct {
	ID                      string  `json:"id"`
	CompanyID               string  `json:"company_id"`
	EmployeeID              string  `json:"employee_id"`
	EmployeeName            string  `json:"employee_name,omitempty"`
	Year                    int     `json:"year"`
	Month                   int     `json:"month"`
	PeriodStart             string  `json:"period_start"`
	PeriodEnd               string  `json:"period_end"`
	BasicSalary             string  `json:"basic_salary"`
	HousingAllowance        string  `json:"housing_allowance"`
	TransportationAllowance string  `json:"transportation_allowance"`
	OvertimeHours           string  `json:"overtime_hours"`
	OvertimePay             string  `json:"overtime_pay"`
	TotalGross              string  `json:"total_gross"`
	GOSIEmployee            string  `json:"gosi_employee"`
	GOSIEmployer            string  `json:"gosi_employer"`
	AbsenceDeduction        string  `json:"absence_deduction"`
	OtherDeductions         string  `json:"other_deductions"`
	TotalDeductions         string  `json:"total_deductions"`
	NetSalary               string  `json:"net_salary"`
	DaysWorked              int     `json:"days_worked"`
	DaysAbsent              int     `json:"days_absent"`
	Status                  string  `json:"status"`
	CreatedBy               string  `json:"created_by"`
	ApprovedBy              *string `json:"approved_by,omitempty"`
	ApprovedAt              *string `json:"approved_at,omitempty"`
	PaidBy                  *string `json:"paid_by,omitempty"`
	PaidAt                  *string `json:"paid_at,omitempty"`
}

type ComponentResponse struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type BreakdownResponse struct {
	Payroll    PayrollResponse     `json:"payroll"`
	Earnings   []ComponentResponse `json:"earnings"`
	Deductions []ComponentResponse `json:"deductions"`
	Employer   []ComponentResponse `json:"employer_contributions"`
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:                      p.ID.String(),
		CompanyID:               p.CompanyID.String(),
		EmployeeID:              p.EmployeeID.String(),
		Year:                    p.Year,
		Month:                   p.Month,
		PeriodStart:             p.PeriodStart.Format(dateLayout),
		PeriodEnd:               p.PeriodEnd.Format(dateLayout),
		BasicSalary:             p.BasicSalary.StringFixed(2),
		HousingAllowance:        p.HousingAllowance.StringFixed(2),
		TransportationAllowance: p.TransportationAllowance.StringFixed(2),
		OvertimeHours:           p.OvertimeHours.StringFixed(2),
		OvertimePay:             p.OvertimePay.StringFixed(2),
		TotalGross:              p.TotalGross.StringFixed(2),
		GOSIEmployee:            p.GOSIEmployee.StringFixed(2),
		GOSIEmployer:            p.GOSIEmployer.StringFixed(2),
		AbsenceDeduction:        p.AbsenceDeduction.StringFixed(2),
		OtherDeductions:         p.OtherDeductions.StringFixed(2),
		TotalDeductions:         p.TotalDeductions.StringFixed(2),
		NetSalary:               p.NetSalary.StringFixed(2),
		DaysWorked:              p.DaysWorked,
		DaysAbsent:              p.DaysAbsent,
		Status:                  p.Status,
		CreatedBy:               p.CreatedBy.String(),
		ApprovedAt:              formatTime(p.ApprovedAt),
		PaidAt:                  formatTime(p.PaidAt),
	}
	if p.Employee != nil {
		resp.EmployeeName = p.Employee.FullName
	}
	if p.ApprovedBy != nil {
		v := p.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if p.PaidBy != nil {
		v := p.PaidBy.String()
		resp.PaidBy = &v
	}
	return resp
}

func mapToBreakdown(p Payroll) BreakdownResponse {
	resp := BreakdownResponse{
		Payroll:    mapToResponse(p),
		Earnings:   []ComponentResponse{},
		Deductions: []ComponentResponse{},
		Employer: []ComponentResponse{{
			Type:   "Employer",
			Name:   "GOSI Employer Share",
			Amount: p.GOSIEmployer.StringFixed(2),
		}},
	}
	for _, c := range p.Components {
		line := ComponentResponse{Type: c.Type, Name: c.Name, Amount: c.Amount.StringFixed(2)}
		if c.Type == ComponentDeduction {
			resp.Deductions = append(resp.Deductions, line)
			continue
		}
		resp.Earnings = append(resp.Earnings, line)
	}
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}
