package attendanceerrors

import (
	"fmt"
	"net/http"

	"hrms-lite/internal/shared/apperror"
)

var (
	ErrAlreadyMarked = apperror.New(
		apperror.CodeConflict,
		"Attendance record already exists for this date",
		http.StatusConflict,
	)
	ErrEmployeeMissing = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)

func EmployeeNotFound(employeeID string) *apperror.AppError {
	return apperror.New(
		apperror.CodeNotFound,
		fmt.Sprintf("Employee '%s' not found.", employeeID),
		http.StatusNotFound,
	)
}

func DuplicateForDate(employeeID, date string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("Attendance for '%s' on %s already recorded.", employeeID, date),
		http.StatusConflict,
	)
}

func InvalidDateParam(param string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", param),
		http.StatusBadRequest,
	)
}
