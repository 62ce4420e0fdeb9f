package employee

import (
	"errors"
	"strings"

	employeeerrors "hrms-lite/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError classifies storage errors. Unique violations raised at
// commit time are the authoritative conflict signal; the pre-checks in the
// service only exist for friendlier messages.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employees_employee_id":
				return employeeerrors.ErrEmployeeIDTaken
			case "uq_employees_email":
				return employeeerrors.ErrEmailTaken
			}
			return employeeerrors.ErrDuplicateEmployee
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employees_employee_id") {
		return employeeerrors.ErrEmployeeIDTaken
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employees_email") {
		return employeeerrors.ErrEmailTaken
	}
	if strings.Contains(errMsg, "duplicate key value") {
		return employeeerrors.ErrDuplicateEmployee
	}

	return err
}
