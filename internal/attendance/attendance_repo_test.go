package attendance_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"hrms-lite/internal/attendance"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (attendance.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	assert.NoError(t, err)

	return attendance.NewRepository(gdb), sqlMock
}

func attendanceRows(dates ...time.Time) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "employee_id", "date", "status", "created_at"})
	for i, d := range dates {
		rows.AddRow(uint(i+1), "E1", d, "Present", d)
	}
	return rows
}

func TestRepository_FindAllByEmployee(t *testing.T) {
	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day5 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	day10 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("both bounds are inclusive", func(t *testing.T) {
		repo, sqlMock := setupRepoTest(t)

		// Records sitting exactly on the bounds must come back.
		sqlMock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM "attendance" WHERE employee_id = $1 AND date >= $2 AND date <= $3 ORDER BY date DESC`,
		)).
			WithArgs("E1", "2024-01-01", "2024-01-10").
			WillReturnRows(attendanceRows(day10, day5, day1))

		rows, err := repo.FindAllByEmployee(context.Background(), "E1", &day1, &day10)

		assert.NoError(t, err)
		assert.Len(t, rows, 3)
		assert.Equal(t, "2024-01-10", rows[0].Date.Format("2006-01-02"))
		assert.Equal(t, "2024-01-01", rows[2].Date.Format("2006-01-02"))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("only lower bound", func(t *testing.T) {
		repo, sqlMock := setupRepoTest(t)

		sqlMock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM "attendance" WHERE employee_id = $1 AND date >= $2 ORDER BY date DESC`,
		)).
			WithArgs("E1", "2024-01-05").
			WillReturnRows(attendanceRows(day10, day5))

		rows, err := repo.FindAllByEmployee(context.Background(), "E1", &day5, nil)

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("only upper bound", func(t *testing.T) {
		repo, sqlMock := setupRepoTest(t)

		sqlMock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM "attendance" WHERE employee_id = $1 AND date <= $2 ORDER BY date DESC`,
		)).
			WithArgs("E1", "2024-01-05").
			WillReturnRows(attendanceRows(day5, day1))

		rows, err := repo.FindAllByEmployee(context.Background(), "E1", nil, &day5)

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("no bounds returns the full history", func(t *testing.T) {
		repo, sqlMock := setupRepoTest(t)

		sqlMock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM "attendance" WHERE employee_id = $1 ORDER BY date DESC`,
		)).
			WithArgs("E1").
			WillReturnRows(attendanceRows(day10, day5, day1))

		rows, err := repo.FindAllByEmployee(context.Background(), "E1", nil, nil)

		assert.NoError(t, err)
		assert.Len(t, rows, 3)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
