package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hrms-lite/internal/employee"
	employeeerrors "hrms-lite/internal/employee/errors"
	employeeMock "hrms-lite/internal/employee/mock"
	"hrms-lite/internal/events"
	"hrms-lite/internal/messaging/kafka"
	kafkaMock "hrms-lite/internal/messaging/kafka/mock"
	"hrms-lite/internal/shared/apperror"
	"hrms-lite/internal/shared/cachekeys"
	"hrms-lite/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	assert.NoError(t, err)

	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := employee.NewServiceWithOutbox(gdb, repo, outboxRepo, dbRedis)

	return &serviceDeps{
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		outbox:    outboxRepo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func todaySummaryKey() string {
	return cachekeys.DashboardSummary(time.Now().Format("2006-01-02"))
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	req := employee.CreateEmployeeRequest{
		EmployeeID: "E1",
		FullName:   "Alice Smith",
		Email:      "alice@x.com",
		Department: "Eng",
	}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		createdAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			ExistsByEmployeeID(ctx, "E1").
			Return(false, nil)

		deps.repo.EXPECT().
			ExistsByEmail(ctx, "alice@x.com").
			Return(false, nil)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "E1", e.EmployeeID)
				assert.Equal(t, "Alice Smith", e.FullName)
				assert.Equal(t, "alice@x.com", e.Email)
				assert.Equal(t, "Eng", e.Department)
				e.ID = 7
				e.CreatedAt = createdAt
				return nil
			})

		deps.outbox.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.outbox)

		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, "employee", ev.AggregateType)
				assert.Equal(t, "E1", ev.AggregateID)
				assert.Equal(t, "employee_created", ev.EventType)
				assert.Equal(t, events.EmployeeLifecycleTopic, ev.Topic)
				assert.Equal(t, kafka.OutboxStatusPending, ev.Status)
				var payload events.EmployeeCreatedEvent
				assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, "E1", payload.EmployeeID)
				return nil
			})

		deps.redismock.ExpectDel(todaySummaryKey()).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, uint(7), resp.ID)
		assert.Equal(t, "E1", resp.EmployeeID)
		assert.Equal(t, createdAt.Format(time.RFC3339), resp.CreatedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("propagates request id into the outbox payload", func(t *testing.T) {
		deps := setupServiceTest(t)
		rid := "REQ-123-ABC"
		ctx := contextutil.WithRequestID(context.Background(), rid)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmployeeID(ctx, "E1").Return(false, nil)
		deps.repo.EXPECT().ExistsByEmail(ctx, "alice@x.com").Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, rid, ev.RequestID)
				return nil
			})
		deps.redismock.ExpectDel(todaySummaryKey()).SetVal(1)

		_, err := deps.service.Create(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("duplicate employee id rejected before insert", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmployeeID(ctx, "E1").Return(true, nil)

		_, err := deps.service.Create(ctx, req)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeConflict, appErr.Code)
		assert.Contains(t, appErr.Message, "E1")
	})

	t.Run("duplicate email rejected before insert", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmployeeID(ctx, "E1").Return(false, nil)
		deps.repo.EXPECT().ExistsByEmail(ctx, "alice@x.com").Return(true, nil)

		_, err := deps.service.Create(ctx, req)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeConflict, appErr.Code)
		assert.Contains(t, appErr.Message, "alice@x.com")
	})

	t.Run("unique violation at insert maps to conflict", func(t *testing.T) {
		// Two concurrent creates can both pass the pre-checks; the
		// constraint decides and the loser still gets a 409.
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmployeeID(ctx, "E1").Return(false, nil)
		deps.repo.EXPECT().ExistsByEmail(ctx, "alice@x.com").Return(false, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_email"})

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmailTaken)
	})

	t.Run("unexpected storage error is not converted", func(t *testing.T) {
		deps := setupServiceTest(t)
		boom := errors.New("connection reset")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmployeeID(ctx, "E1").Return(false, nil)
		deps.repo.EXPECT().ExistsByEmail(ctx, "alice@x.com").Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(boom)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, boom)
		var appErr *apperror.AppError
		assert.False(t, errors.As(err, &appErr))
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	deps.repo.EXPECT().
		FindAll(ctx).
		Return([]employee.Employee{
			{ID: 2, EmployeeID: "E2", FullName: "Bob", Email: "bob@x.com", Department: "Ops"},
			{ID: 1, EmployeeID: "E1", FullName: "Alice", Email: "alice@x.com", Department: "Eng"},
		}, nil)

	resp, err := deps.service.GetAll(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Employees, 2)
	assert.Equal(t, "E2", resp.Employees[0].EmployeeID)
	assert.Equal(t, "E1", resp.Employees[1].EmployeeID)
}

func TestEmployeeService_GetByEmployeeID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().
			FindByEmployeeID(ctx, "E1").
			Return(&employee.Employee{ID: 1, EmployeeID: "E1", FullName: "Alice"}, nil)

		resp, err := deps.service.GetByEmployeeID(ctx, "E1")

		assert.NoError(t, err)
		assert.Equal(t, "E1", resp.EmployeeID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().
			FindByEmployeeID(ctx, "ghost").
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByEmployeeID(ctx, "ghost")

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
		assert.Contains(t, appErr.Message, "ghost")
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success removes attendance in the same transaction", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmployeeID(ctx, "E1").Return(true, nil)
		deps.repo.EXPECT().DeleteAttendanceByEmployeeID(ctx, "E1").Return(nil)
		deps.repo.EXPECT().DeleteByEmployeeID(ctx, "E1").Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, "employee_deleted", ev.EventType)
				assert.Equal(t, "E1", ev.AggregateID)
				return nil
			})
		deps.redismock.ExpectDel(todaySummaryKey()).SetVal(1)

		resp, err := deps.service.Delete(ctx, "E1")

		assert.NoError(t, err)
		assert.Equal(t, "Employee 'E1' deleted successfully.", resp.Message)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmployeeID(ctx, "ghost").Return(false, nil)

		_, err := deps.service.Delete(ctx, "ghost")

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
		assert.Contains(t, appErr.Message, "ghost")
	})
}
