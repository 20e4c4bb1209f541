package employee

type CreateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	EmployeeNumber   string `json:"employee_number"`
	Phone            string `json:"phone"`
	ManagerID        string `json:"manager_id" binding:"omitempty,uuid"`
	DepartmentID     string `json:"department_id" binding:"omitempty,uuid"`
	JobTitle         string `json:"job_title"`
	Nationality      string `json:"nationality"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=active inactive"`
}

type UpdateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	EmployeeNumber   string `json:"employee_number"`
	Phone            string `json:"phone"`
	ManagerID        string `json:"manager_id" binding:"omitempty,uuid"`
	DepartmentID     string `json:"department_id" binding:"omitempty,uuid"`
	JobTitle         string `json:"job_title"`
	Nationality      string `json:"nationality"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=active inactive"`
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	CompanyID        string `json:"company_id"`
	EmployeeNumber   string `json:"employee_number"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	ManagerID        string `json:"manager_id,omitempty"`
	DepartmentID     string `json:"department_id,omitempty"`
	JobTitle         string `json:"job_title,omitempty"`
	Nationality      string `json:"nationality,omitempty"`
	HireDate         string `json:"hire_date"`
	EmploymentStatus string `json:"employment_status"`
}
