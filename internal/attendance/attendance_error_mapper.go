package attendance

import (
	"errors"
	"strings"

	attendanceerrors "hrms-lite/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError classifies storage errors raised past the pre-checks.
// A unique violation on (employee_id, date) means a concurrent request won
// the race; a FK violation means the employee vanished between check and
// insert. Both re-map to the same outcome as the pre-check path.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return attendanceerrors.ErrAlreadyMarked
		case "23503":
			return attendanceerrors.ErrEmployeeMissing
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_employee_date") {
		return attendanceerrors.ErrAlreadyMarked
	}
	if strings.Contains(errMsg, "violates foreign key constraint") {
		return attendanceerrors.ErrEmployeeMissing
	}

	return err
}
