package attendance

import (
	"net/http"
	"time"

	attendanceerrors "hrms-lite/internal/attendance/errors"
	"hrms-lite/internal/shared/apperror"
	"hrms-lite/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Mark(c *gin.Context) {
	h.logger.Debug("http mark attendance")
	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http mark attendance validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Mark(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) ListForEmployee(c *gin.Context) {
	employeeID := c.Param("employee_id")
	h.logger.Debug("http list attendance", zap.String("employee_id", employeeID))

	dateFrom, err := parseDateQuery(c, "date_from")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	dateTo, err := parseDateQuery(c, "date_to")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.ListForEmployee(c.Request.Context(), employeeID, dateFrom, dateTo)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Summary(c *gin.Context) {
	h.logger.Debug("http attendance summary")

	resp, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, attendanceerrors.InvalidDateParam(name)
	}
	return &d, nil
}
