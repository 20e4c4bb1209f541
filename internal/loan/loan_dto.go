package loan

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ProductRequest struct {
	Code          string `json:"code" binding:"required,max=32"`
	Name          string `json:"name" binding:"required"`
	Method        string `json:"interest_method" binding:"required,oneof='Interest Free' 'Flat Rate' 'Reducing Balance'"`
	AnnualRate    string `json:"annual_rate" binding:"omitempty,numeric"`
	AdminFee      string `json:"admin_fee" binding:"omitempty,numeric"`
	MinAmount     string `json:"min_amount" binding:"required,numeric"`
	MaxAmount     string `json:"max_amount" binding:"required,numeric"`
	MinTermMonths int    `json:"min_term_months" binding:"required,min=1"`
	MaxTermMonths int    `json:"max_term_months" binding:"required,min=1"`
	IsActive      *bool  `json:"is_active"`
}

type ProductResponse struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Method        string `json:"interest_method"`
	AnnualRate    string `json:"annual_rate"`
	AdminFee      string `json:"admin_fee"`
	MinAmount     string `json:"min_amount"`
	MaxAmount     string `json:"max_amount"`
	MinTermMonths int    `json:"min_term_months"`
	MaxTermMonths int    `json:"max_term_months"`
	IsActive      bool   `json:"is_active"`
}

type QuoteRequest struct {
	ProductID  string `json:"product_id" binding:"required,uuid"`
	Amount     string `json:"amount" binding:"required,numeric"`
	TermMonths int    `json:"term_months" binding:"required,min=1"`
}

type QuoteResponse struct {
	ProductID     string `json:"product_id"`
	Method        string `json:"interest_method"`
	Amount        string `json:"amount"`
	TermMonths    int    `json:"term_months"`
	AnnualRate    string `json:"annual_rate"`
	AdminFee      string `json:"admin_fee"`
	Installment   string `json:"installment_amount"`
	TotalCost     string `json:"total_loan_cost"`
	TotalInterest string `json:"total_interest"`
}

type ApplyRequest struct {
	QuoteRequest
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	Purpose    string `json:"purpose"`
}

type ApproveRequest struct {
	Comments string `json:"comments"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type DisburseRequest struct {
	DisbursementDate string `json:"disbursement_date"`
}

type RepaymentRequest struct {
	Amount    string `json:"amount" binding:"required,numeric"`
	PaidAt    string `json:"paid_at"`
	Reference string `json:"reference" binding:"max=64"`
}

type ListFilter struct {
	EmployeeID string
	Status     string
	Sort       string
}

type LoanResponse struct {
	ID                   string         `json:"id"`
	EmployeeID           string         `json:"employee_id"`
	EmployeeName         string         `json:"employee_name,omitempty"`
	ProductID            string         `json:"product_id"`
	ProductName          string         `json:"product_name,omitempty"`
	Method               string         `json:"interest_method"`
	Principal            string         `json:"principal"`
	TermMonths           int            `json:"term_months"`
	AnnualRate           string         `json:"annual_rate"`
	AdminFee             string         `json:"admin_fee"`
	InstallmentAmount    string         `json:"installment_amount"`
	TotalLoanCost        string         `json:"total_loan_cost"`
	TotalInterest        string         `json:"total_interest"`
	OutstandingPrincipal string         `json:"outstanding_principal"`
	OutstandingInterest  string         `json:"outstanding_interest"`
	OutstandingFee       string         `json:"outstanding_fee"`
	TotalPaid            string         `json:"total_paid"`
	InstallmentsPaid     int            `json:"installments_paid"`
	Purpose              string         `json:"purpose,omitempty"`
	Status               string         `json:"status"`
	Approvals            []ApprovalStep `json:"approvals,omitempty"`
	RejectionReason      string         `json:"rejection_reason,omitempty"`
	RejectedAtStage      string         `json:"rejected_at_stage,omitempty"`
	DisbursementDate     *string        `json:"disbursement_date,omitempty"`
	FirstInstallmentDue  *string        `json:"first_installment_due,omitempty"`
	MaturityDate         *string        `json:"maturity_date,omitempty"`
	CreatedAt            string         `json:"created_at"`
}

type ApprovalStep struct {
	Stage      string `json:"stage"`
	ApprovedBy string `json:"approved_by"`
	ApprovedAt string `json:"approved_at"`
}

type RepaymentResponse struct {
	ID            string `json:"id"`
	LoanID        string `json:"loan_id"`
	Amount        string `json:"amount"`
	PrincipalPart string `json:"principal_part"`
	InterestPart  string `json:"interest_part"`
	FeePart       string `json:"fee_part"`
	PaidAt        string `json:"paid_at"`
	Reference     string `json:"reference,omitempty"`
}

type RepaymentResult struct {
	Repayment RepaymentResponse `json:"repayment"`
	Loan      LoanResponse      `json:"loan"`
}

func mapProductResponse(p Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID.String(),
		Code:          p.Code,
		Name:          p.Name,
		Method:        p.Method,
		AnnualRate:    p.AnnualRate.String(),
		AdminFee:      p.AdminFee.StringFixed(2),
		MinAmount:     p.MinAmount.StringFixed(2),
		MaxAmount:     p.MaxAmount.StringFixed(2),
		MinTermMonths: p.MinTermMonths,
		MaxTermMonths: p.MaxTermMonths,
		IsActive:      p.IsActive,
	}
}

func mapToResponse(a Account) LoanResponse {
	resp := LoanResponse{
		ID:                   a.ID.String(),
		EmployeeID:           a.EmployeeID.String(),
		ProductID:            a.ProductID.String(),
		Method:               a.Method,
		Principal:            a.Principal.StringFixed(2),
		TermMonths:           a.TermMonths,
		AnnualRate:           a.AnnualRate.String(),
		AdminFee:             a.AdminFee.StringFixed(2),
		InstallmentAmount:    a.InstallmentAmount.StringFixed(2),
		TotalLoanCost:        a.TotalLoanCost.StringFixed(2),
		TotalInterest:        a.TotalInterest.StringFixed(2),
		OutstandingPrincipal: a.OutstandingPrincipal.StringFixed(2),
		OutstandingInterest:  a.OutstandingInterest.StringFixed(2),
		OutstandingFee:       a.OutstandingFee.StringFixed(2),
		TotalPaid:            a.TotalPaid.StringFixed(2),
		InstallmentsPaid:     a.InstallmentsPaid,
		Purpose:              a.Purpose,
		Status:               a.Status,
		RejectionReason:      a.RejectionReason,
		RejectedAtStage:      a.RejectedAtStage,
		DisbursementDate:     formatDate(a.DisbursementDate),
		FirstInstallmentDue:  formatDate(a.FirstInstallmentDue),
		MaturityDate:         formatDate(a.MaturityDate),
		CreatedAt:            a.CreatedAt.Format(time.RFC3339),
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	if a.Product != nil {
		resp.ProductName = a.Product.Name
	}

	resp.Approvals = appendApproval(resp.Approvals, StatusManagerApproved, a.ManagerApprovedBy, a.ManagerApprovedAt)
	resp.Approvals = appendApproval(resp.Approvals, StatusHRApproved, a.HRApprovedBy, a.HRApprovedAt)
	resp.Approvals = appendApproval(resp.Approvals, StatusFinanceApproved, a.FinanceApprovedBy, a.FinanceApprovedAt)
	return resp
}

func mapRepaymentResponse(r Repayment) RepaymentResponse {
	return RepaymentResponse{
		ID:            r.ID.String(),
		LoanID:        r.LoanID.String(),
		Amount:        r.Amount.StringFixed(2),
		PrincipalPart: r.PrincipalPart.StringFixed(2),
		InterestPart:  r.InterestPart.StringFixed(2),
		FeePart:       r.FeePart.StringFixed(2),
		PaidAt:        r.PaidAt.Format(dateLayout),
		Reference:     r.Reference,
	}
}

func appendApproval(steps []ApprovalStep, stage string, by *uuid.UUID, at *time.Time) []ApprovalStep {
	if by == nil || at == nil {
		return steps
	}
	return append(steps, ApprovalStep{
		Stage:      stage,
		ApprovedBy: by.String(),
		ApprovedAt: at.Format(time.RFC3339),
	})
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(dateLayout)
	return &v
}
