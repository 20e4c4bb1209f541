package workflow

import (
	"context"
)

// EmployeeDirectory answers the organisational lookups behind approver
// resolution. Each method returns "" when nothing matches.
type EmployeeDirectory interface {
	ManagerOf(ctx context.Context, companyID, employeeID string) (string, error)
	DepartmentOf(ctx context.Context, companyID, employeeID string) (string, error)
	DepartmentHead(ctx context.Context, companyID, departmentID string) (string, error)
	FirstByTitle(ctx context.Context, companyID, keyword, departmentID string) (string, error)
}

// Title keywords matched case-insensitively against job titles.
const (
	hrTitleKeyword      = "hr"
	headTitleKeyword    = "head"
	financeTitleKeyword = "finance"
)

type ApproverResolver struct {
	dir EmployeeDirectory
}

func NewApproverResolver(dir EmployeeDirectory) *ApproverResolver {
	return &ApproverResolver{dir: dir}
}

// Resolve returns the employee id expected to act on step for a request
// raised by requesterID, or "" when nobody matches.
func (r *ApproverResolver) Resolve(ctx context.Context, companyID, requesterID string, step Step) (string, error) {
	switch step.ApproverType {
	case ApproverDirectManager:
		return r.dir.ManagerOf(ctx, companyID, requesterID)
	case ApproverHR:
		return r.dir.FirstByTitle(ctx, companyID, hrTitleKeyword, "")
	case ApproverFinance:
		return r.dir.FirstByTitle(ctx, companyID, financeTitleKeyword, "")
	case ApproverDepartmentHead:
		departmentID, err := r.dir.DepartmentOf(ctx, companyID, requesterID)
		if err != nil || departmentID == "" {
			return "", err
		}
		head, err := r.dir.DepartmentHead(ctx, companyID, departmentID)
		if err != nil || head != "" {
			return head, err
		}
		return r.dir.FirstByTitle(ctx, companyID, headTitleKeyword, departmentID)
	case ApproverSpecificUser:
		return step.ApproverID, nil
	}
	return "", nil
}

// ResolveRole resolves a bare approver role, as used by the legacy chain.
func (r *ApproverResolver) ResolveRole(ctx context.Context, companyID, requesterID, role string) (string, error) {
	return r.Resolve(ctx, companyID, requesterID, Step{ApproverType: role})
}
