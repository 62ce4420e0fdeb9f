package attendance

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *Attendance) error
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	FindAllByEmployee(ctx context.Context, employeeID string, dateFrom, dateTo *time.Time) ([]Attendance, error)
	CountEmployees(ctx context.Context) (int64, error)
	CountForDate(ctx context.Context, date time.Time, status Status) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EmployeeRef{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, dateFrom, dateTo *time.Time) ([]Attendance, error) {
	q := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID)

	if dateFrom != nil {
		q = q.Where("date >= ?", dateFrom.Format("2006-01-02"))
	}
	if dateTo != nil {
		q = q.Where("date <= ?", dateTo.Format("2006-01-02"))
	}

	var rows []Attendance
	err := q.Order("date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) CountEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EmployeeRef{}).
		Count(&count).Error
	return count, err
}

func (r *repository) CountForDate(ctx context.Context, date time.Time, status Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("date = ?", date.Format("2006-01-02")).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}
