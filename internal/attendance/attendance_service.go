package attendance

import (
	"context"
	"encoding/json"
	"math"
	"time"

	attendanceerrors "hrms-lite/internal/attendance/errors"
	"hrms-lite/internal/events"
	"hrms-lite/internal/messaging/kafka"
	"hrms-lite/internal/shared/cachekeys"
	"hrms-lite/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	ListForEmployee(ctx context.Context, employeeID string, dateFrom, dateTo *time.Time) (AttendanceListResponse, error)
	Summary(ctx context.Context) (SummaryResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	outbox     kafka.OutboxRepository
	rdb        *redis.Client
	sf         *singleflight.Group
	summaryTTL time.Duration
	logger     *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, nil, 0, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	summaryTTL time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if summaryTTL <= 0 {
		summaryTTL = 30 * time.Second
	}
	return &service{
		db:         db,
		repo:       repo,
		outbox:     outboxRepo,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		summaryTTL: summaryTTL,
		logger:     l,
	}
}

func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("mark attendance requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		s.logger.Warn("mark attendance invalid date", zap.String("date", req.Date), zap.Error(err))
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("mark attendance begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return AttendanceResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("mark attendance employee lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if !exists {
		s.logger.Warn("mark attendance employee unknown", zap.String("employee_id", req.EmployeeID))
		return AttendanceResponse{}, attendanceerrors.EmployeeNotFound(req.EmployeeID)
	}

	// Friendly-message pre-check; the unique constraint still decides under
	// concurrent marks.
	marked, err := qtx.ExistsForDate(ctx, req.EmployeeID, date)
	if err != nil {
		s.logger.Error("mark attendance duplicate lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if marked {
		s.logger.Warn("mark attendance duplicate",
			zap.String("employee_id", req.EmployeeID),
			zap.String("date", req.Date),
		)
		return AttendanceResponse{}, attendanceerrors.DuplicateForDate(req.EmployeeID, req.Date)
	}

	row := &Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     Status(req.Status),
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("mark attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.AttendanceMarkedEvent{
			EventType:  "attendance_marked",
			RequestID:  rid,
			EmployeeID: row.EmployeeID,
			Date:       req.Date,
			Status:     req.Status,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return AttendanceResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "attendance",
			AggregateID:   row.EmployeeID,
			EventType:     event.EventType,
			Topic:         events.AttendanceTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("mark attendance outbox persist failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("mark attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.invalidateSummaryCache(ctx, req.Date)

	s.logger.Info("mark attendance success",
		zap.String("request_id", rid),
		zap.String("employee_id", row.EmployeeID),
		zap.String("date", req.Date),
	)

	return mapToResponse(*row), nil
}

func (s *service) ListForEmployee(ctx context.Context, employeeID string, dateFrom, dateTo *time.Time) (AttendanceListResponse, error) {
	s.logger.Debug("list attendance requested", zap.String("employee_id", employeeID))

	exists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		s.logger.Error("list attendance employee lookup failed", zap.Error(err))
		return AttendanceListResponse{}, err
	}
	if !exists {
		return AttendanceListResponse{}, attendanceerrors.EmployeeNotFound(employeeID)
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID, dateFrom, dateTo)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return AttendanceListResponse{}, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return AttendanceListResponse{Records: res, Total: len(res)}, nil
}

func (s *service) Summary(ctx context.Context) (SummaryResponse, error) {
	today := time.Now().Format("2006-01-02")
	cacheKey := cachekeys.DashboardSummary(today)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp SummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Dashboards poll this endpoint; singleflight keeps a cold cache from
	// turning into a thundering herd of count queries.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.computeSummary(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, s.summaryTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return SummaryResponse{}, err
	}

	return v.(SummaryResponse), nil
}

func (s *service) computeSummary(ctx context.Context) (SummaryResponse, error) {
	today := time.Now()

	total, err := s.repo.CountEmployees(ctx)
	if err != nil {
		s.logger.Error("summary count employees failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	present, err := s.repo.CountForDate(ctx, today, StatusPresent)
	if err != nil {
		s.logger.Error("summary count present failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	absent, err := s.repo.CountForDate(ctx, today, StatusAbsent)
	if err != nil {
		s.logger.Error("summary count absent failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	// 0.0 on an empty store is a policy choice, not an error.
	rate := 0.0
	if total > 0 {
		rate = math.Round(float64(present)/float64(total)*1000) / 10
	}

	return SummaryResponse{
		TotalEmployees: total,
		PresentToday:   present,
		AbsentToday:    absent,
		AttendanceRate: rate,
	}, nil
}

func (s *service) invalidateSummaryCache(ctx context.Context, date string) {
	if s.rdb == nil {
		return
	}
	cacheKey := cachekeys.DashboardSummary(date)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate summary cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format("2006-01-02"),
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
