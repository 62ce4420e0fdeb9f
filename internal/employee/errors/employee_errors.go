package employeeerrors

import (
	"fmt"
	"net/http"

	"hrms-lite/internal/shared/apperror"
)

// Static errors cover the commit-time constraint path where the offending
// value is no longer at hand; the constructors carry the friendlier
// pre-check messages.
var (
	ErrEmployeeIDTaken = apperror.New(
		apperror.CodeConflict,
		"Employee ID already exists",
		http.StatusConflict,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"An employee with this email already exists",
		http.StatusConflict,
	)
	ErrDuplicateEmployee = apperror.New(
		apperror.CodeConflict,
		"Duplicate employee ID or email",
		http.StatusConflict,
	)
)

func NotFound(employeeID string) *apperror.AppError {
	return apperror.New(
		apperror.CodeNotFound,
		fmt.Sprintf("Employee '%s' not found.", employeeID),
		http.StatusNotFound,
	)
}

func DuplicateEmployeeID(employeeID string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("Employee with ID '%s' already exists.", employeeID),
		http.StatusConflict,
	)
}

func DuplicateEmail(email string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("An employee with email '%s' already exists.", email),
		http.StatusConflict,
	)
}
