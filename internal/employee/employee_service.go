package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	employeeerrors "hrms-lite/internal/employee/errors"
	"hrms-lite/internal/events"
	"hrms-lite/internal/messaging/kafka"
	"hrms-lite/internal/shared/cachekeys"
	"hrms-lite/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) (EmployeeListResponse, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (EmployeeResponse, error)
	Delete(ctx context.Context, employeeID string) (DeleteEmployeeResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, nil, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("email", req.Email),
	)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Pre-checks give the caller a message naming the duplicate value; the
	// unique constraints remain the final authority under concurrency.
	taken, err := qtx.ExistsByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("create employee id lookup failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if taken {
		s.logger.Warn("create employee duplicate id", zap.String("employee_id", req.EmployeeID))
		return EmployeeResponse{}, employeeerrors.DuplicateEmployeeID(req.EmployeeID)
	}

	taken, err = qtx.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("create employee email lookup failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if taken {
		s.logger.Warn("create employee duplicate email", zap.String("email", req.Email))
		return EmployeeResponse{}, employeeerrors.DuplicateEmail(req.Email)
	}

	empl := &Employee{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.EmployeeID,
			Email:      empl.Email,
			Department: empl.Department,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.EmployeeID,
			EventType:     event.EventType,
			Topic:         events.EmployeeLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.EmployeeID),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateSummaryCache(ctx, time.Now())

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.EmployeeID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) (EmployeeListResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return EmployeeListResponse{}, err
	}

	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return EmployeeListResponse{Employees: res, Total: len(res)}, nil
}

func (s *service) GetByEmployeeID(ctx context.Context, employeeID string) (EmployeeResponse, error) {
	s.logger.Debug("get employee requested", zap.String("employee_id", employeeID))
	empl, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.NotFound(employeeID)
		}
		s.logger.Error("get employee failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, employeeID string) (DeleteEmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
	)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(tx.Error))
		return DeleteEmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsByEmployeeID(ctx, employeeID)
	if err != nil {
		s.logger.Error("delete employee lookup failed", zap.Error(err))
		return DeleteEmployeeResponse{}, err
	}
	if !exists {
		return DeleteEmployeeResponse{}, employeeerrors.NotFound(employeeID)
	}

	if err := qtx.DeleteAttendanceByEmployeeID(ctx, employeeID); err != nil {
		s.logger.Error("delete employee attendance cascade failed", zap.Error(err))
		return DeleteEmployeeResponse{}, err
	}

	if err := qtx.DeleteByEmployeeID(ctx, employeeID); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return DeleteEmployeeResponse{}, err
	}

	if s.outbox != nil {
		event := events.EmployeeDeletedEvent{
			EventType:  "employee_deleted",
			RequestID:  rid,
			EmployeeID: employeeID,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return DeleteEmployeeResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   employeeID,
			EventType:     event.EventType,
			Topic:         events.EmployeeLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("delete employee outbox persist failed", zap.Error(err))
			return DeleteEmployeeResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return DeleteEmployeeResponse{}, err
	}

	s.invalidateSummaryCache(ctx, time.Now())

	s.logger.Info("delete employee success", zap.String("employee_id", employeeID))
	return DeleteEmployeeResponse{
		Message: fmt.Sprintf("Employee '%s' deleted successfully.", employeeID),
	}, nil
}

// invalidateSummaryCache drops today's cached dashboard summary after any
// mutation that moves the employee counts.
func (s *service) invalidateSummaryCache(ctx context.Context, now time.Time) {
	if s.rdb == nil {
		return
	}
	cacheKey := cachekeys.DashboardSummary(now.Format("2006-01-02"))
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate summary cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         empl.ID,
		EmployeeID: empl.EmployeeID,
		FullName:   empl.FullName,
		Email:      empl.Email,
		Department: empl.Department,
		CreatedAt:  empl.CreatedAt.UTC().Format(time.RFC3339),
	}
}
