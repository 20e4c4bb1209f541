package employee

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// DepartmentHeads resolves the head assigned to a department, "" when unset.
type DepartmentHeads interface {
	HeadOf(ctx context.Context, companyID, departmentID string) (string, error)
}

// Directory answers the employee lookups needed to route approvals and
// address notifications. Missing rows resolve to "" without an error.
type Directory struct {
	repo  Repository
	heads DepartmentHeads
}

func NewDirectory(repo Repository, heads DepartmentHeads) *Directory {
	return &Directory{repo: repo, heads: heads}
}

func (d *Directory) ManagerOf(ctx context.Context, companyID, employeeID string) (string, error) {
	empl, err := d.find(ctx, companyID, employeeID)
	if err != nil || empl == nil {
		return "", err
	}
	return uuidToString(empl.ManagerID), nil
}

func (d *Directory) DepartmentOf(ctx context.Context, companyID, employeeID string) (string, error) {
	empl, err := d.find(ctx, companyID, employeeID)
	if err != nil || empl == nil {
		return "", err
	}
	return uuidToString(empl.DepartmentID), nil
}

func (d *Directory) DepartmentHead(ctx context.Context, companyID, departmentID string) (string, error) {
	if d.heads == nil || departmentID == "" {
		return "", nil
	}
	return d.heads.HeadOf(ctx, companyID, departmentID)
}

func (d *Directory) FirstByTitle(ctx context.Context, companyID, keyword, departmentID string) (string, error) {
	empl, err := d.repo.FindFirstByTitle(ctx, companyID, keyword, departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return empl.ID.String(), nil
}

func (d *Directory) EmailOf(ctx context.Context, companyID, employeeID string) (string, error) {
	empl, err := d.find(ctx, companyID, employeeID)
	if err != nil || empl == nil {
		return "", err
	}
	return empl.Email, nil
}

func (d *Directory) find(ctx context.Context, companyID, employeeID string) (*Employee, error) {
	if employeeID == "" {
		return nil, nil
	}
	empl, err := d.repo.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return empl, nil
}
