package employee

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,min=1,max=50"`
	FullName   string `json:"full_name" binding:"required,min=1,max=150"`
	Email      string `json:"email" binding:"required,email,max=255"`
	Department string `json:"department" binding:"required,min=1,max=100"`
}

type EmployeeResponse struct {
	ID         uint   `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	CreatedAt  string `json:"created_at"`
}

type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int                `json:"total"`
}

type DeleteEmployeeResponse struct {
	Message string `json:"message"`
}
