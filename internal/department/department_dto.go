package department

type CreateDepartmentRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	HeadEmployeeID string `json:"head_employee_id" binding:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	HeadEmployeeID string `json:"head_employee_id" binding:"omitempty,uuid"`
}

type DepartmentResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	HeadEmployeeID string `json:"head_employee_id,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
