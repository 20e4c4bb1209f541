package accrual

import "time"

type RunRequest struct {
	Year  int `json:"year" binding:"required,min=1900"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

type ListFilter struct {
	EmployeeID  string
	LeaveTypeID string
	Year        int
	Month       int
}

type AccrualResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Days        string  `json:"days"`
	CreditedAt  *string `json:"credited_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

func mapToResponse(a Accrual) AccrualResponse {
	resp := AccrualResponse{
		ID:          a.ID.String(),
		EmployeeID:  a.EmployeeID.String(),
		LeaveTypeID: a.LeaveTypeID.String(),
		Year:        a.Year,
		Month:       a.Month,
		Days:        a.Days.StringFixed(2),
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
	if a.CreditedAt != nil {
		credited := a.CreditedAt.Format(time.RFC3339)
		resp.CreditedAt = &credited
	}
	return resp
}
