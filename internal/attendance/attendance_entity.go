package attendance

import (
	"time"
)

// Status is the closed attendance state. Validation rejects anything else
// before the service runs, and the CHECK constraint enforces the same set
// at the storage level.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

type Attendance struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID string    `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	Date       time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2"`
	Status     Status    `gorm:"column:status;type:varchar(10);not null;check:chk_attendance_status,status IN ('Present','Absent')"`
	CreatedAt  time.Time `gorm:"column:created_at"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:EmployeeID;constraint:OnDelete:CASCADE"`
}

func (Attendance) TableName() string {
	return "attendance"
}

// EmployeeRef is a slim view of the employees table for existence checks and
// the cascading FK, so this module stays decoupled from the employee package.
type EmployeeRef struct {
	ID         uint   `gorm:"column:id;primaryKey"`
	EmployeeID string `gorm:"column:employee_id;type:varchar(50);uniqueIndex:uq_employees_employee_id"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
