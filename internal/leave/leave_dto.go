package leave

import (
	"time"

	"go-ess/internal/workflow"
)

type CreateLeaveRequest struct {
	// EmployeeID defaults to the caller.
	EmployeeID  string `json:"employee_id" binding:"omitempty,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason"`
}

type ApproveLeaveRequest struct {
	Comments string `json:"comments"`
	// ActingAs names the approver role the caller acts in when they are not
	// the resolved approver for the current step.
	ActingAs string `json:"acting_as" binding:"omitempty,oneof='Direct Manager' 'Department Head' HR Finance 'Specific User'"`
}

type RejectLeaveRequest struct {
	Reason   string `json:"reason" binding:"required"`
	ActingAs string `json:"acting_as" binding:"omitempty,oneof='Direct Manager' 'Department Head' HR Finance 'Specific User'"`
}

type ListFilter struct {
	EmployeeID  string
	LeaveTypeID string
	Status      string
	Sort        string
}

type LeaveResponse struct {
	ID                  string  `json:"id"`
	CompanyID           string  `json:"company_id"`
	EmployeeID          string  `json:"employee_id"`
	LeaveTypeID         string  `json:"leave_type_id"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	TotalDays           string  `json:"total_days"`
	Reason              string  `json:"reason"`
	Status              string  `json:"status"`
	ApprovalLevel       int     `json:"approval_level"`
	CurrentApproverRole string  `json:"current_approver_role,omitempty"`
	WorkflowID          *string `json:"workflow_id,omitempty"`
	CreatedBy           string  `json:"created_by"`
	RejectionReason     string  `json:"rejection_reason,omitempty"`
	RejectedAtStage     string  `json:"rejected_at_stage,omitempty"`
	RejectedBy          *string `json:"rejected_by,omitempty"`
	RejectionDate       *string `json:"rejection_date,omitempty"`
	ManagerApprovedBy   *string `json:"manager_approved_by,omitempty"`
	FinalApprovedBy     *string `json:"final_approved_by,omitempty"`
	FinalApprovedDate   *string `json:"final_approved_date,omitempty"`
}

type LeaveTypeRequest struct {
	Code             string `json:"code" binding:"required,max=30"`
	Name             string `json:"name" binding:"required,max=100"`
	MaxDaysPerYear   string `json:"max_days_per_year" binding:"omitempty,numeric"`
	AccrualMethod    string `json:"accrual_method" binding:"omitempty,oneof=None Monthly Yearly Prorated"`
	AccrualRate      string `json:"accrual_rate" binding:"omitempty,numeric"`
	MinServiceMonths int    `json:"min_service_months" binding:"min=0"`
	WorkflowID       string `json:"workflow_id" binding:"omitempty,uuid"`
	IsActive         *bool  `json:"is_active"`
}

type LeaveTypeResponse struct {
	ID               string  `json:"id"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	MaxDaysPerYear   string  `json:"max_days_per_year"`
	AccrualMethod    string  `json:"accrual_method"`
	AccrualRate      string  `json:"accrual_rate"`
	MinServiceMonths int     `json:"min_service_months"`
	WorkflowID       *string `json:"workflow_id,omitempty"`
	IsActive         bool    `json:"is_active"`
}

type BalanceResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	LeaveTypeID    string `json:"leave_type_id"`
	Year           int    `json:"year"`
	OpeningBalance string `json:"opening_balance"`
	Accrued        string `json:"accrued"`
	CarriedForward string `json:"carried_forward"`
	Used           string `json:"used"`
	Pending        string `json:"pending"`
	Encashed       string `json:"encashed"`
	Lapsed         string `json:"lapsed"`
	CurrentBalance string `json:"current_balance"`
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:                  l.ID.String(),
		CompanyID:           l.CompanyID.String(),
		EmployeeID:          l.EmployeeID.String(),
		LeaveTypeID:         l.LeaveTypeID.String(),
		StartDate:           l.StartDate.Format(dateLayout),
		EndDate:             l.EndDate.Format(dateLayout),
		TotalDays:           l.TotalDays.StringFixed(2),
		Reason:              l.Reason,
		Status:              l.Status,
		ApprovalLevel:       l.ApprovalLevel,
		CurrentApproverRole: l.CurrentApproverRole,
		CreatedBy:           l.CreatedBy.String(),
		RejectionReason:     l.RejectionReason,
		RejectedAtStage:     l.RejectedAtStage,
	}
	if l.WorkflowID != nil {
		v := l.WorkflowID.String()
		resp.WorkflowID = &v
	}
	if l.RejectedBy != nil {
		v := l.RejectedBy.String()
		resp.RejectedBy = &v
	}
	if l.RejectionDate != nil {
		v := l.RejectionDate.Format(time.RFC3339)
		resp.RejectionDate = &v
	}
	if l.ManagerApprovedBy != nil {
		v := l.ManagerApprovedBy.String()
		resp.ManagerApprovedBy = &v
	}
	if l.FinalApprovedBy != nil {
		v := l.FinalApprovedBy.String()
		resp.FinalApprovedBy = &v
	}
	if l.FinalApprovedDate != nil {
		v := l.FinalApprovedDate.Format(time.RFC3339)
		resp.FinalApprovedDate = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}

func mapTypeResponse(t LeaveType) LeaveTypeResponse {
	resp := LeaveTypeResponse{
		ID:               t.ID.String(),
		Code:             t.Code,
		Name:             t.Name,
		MaxDaysPerYear:   t.MaxDaysPerYear.StringFixed(2),
		AccrualMethod:    t.AccrualMethod,
		AccrualRate:      t.AccrualRate.StringFixed(2),
		MinServiceMonths: t.MinServiceMonths,
		IsActive:         t.IsActive,
	}
	if t.WorkflowID != nil {
		v := t.WorkflowID.String()
		resp.WorkflowID = &v
	}
	return resp
}

func mapBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		ID:             b.ID.String(),
		EmployeeID:     b.EmployeeID.String(),
		LeaveTypeID:    b.LeaveTypeID.String(),
		Year:           b.Year,
		OpeningBalance: b.OpeningBalance.StringFixed(2),
		Accrued:        b.Accrued.StringFixed(2),
		CarriedForward: b.CarriedForward.StringFixed(2),
		Used:           b.Used.StringFixed(2),
		Pending:        b.Pending.StringFixed(2),
		Encashed:       b.Encashed.StringFixed(2),
		Lapsed:         b.Lapsed.StringFixed(2),
		CurrentBalance: b.CurrentBalance.StringFixed(2),
	}
}

func mapActionResponses(actions []workflow.ApprovalAction) []workflow.ActionResponse {
	resp := make([]workflow.ActionResponse, len(actions))
	for i, a := range actions {
		resp[i] = workflow.MapActionResponse(a)
	}
	return resp
}
