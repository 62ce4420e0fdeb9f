package attendance

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,min=1,max=50"`
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
	Status     string `json:"status" binding:"required,oneof=Present Absent"`
}

type AttendanceResponse struct {
	ID         uint   `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

type AttendanceListResponse struct {
	Records []AttendanceResponse `json:"records"`
	Total   int                  `json:"total"`
}

type SummaryResponse struct {
	TotalEmployees int64   `json:"total_employees"`
	PresentToday   int64   `json:"present_today"`
	AbsentToday    int64   `json:"absent_today"`
	AttendanceRate float64 `json:"attendance_rate"`
}
