package app

import (
	"net/http"

	"hrms-lite/internal/attendance"
	"hrms-lite/internal/config"
	"hrms-lite/internal/employee"
	"hrms-lite/internal/messaging/kafka"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg config.Config,
	logger *zap.Logger,
) {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)

	var outboxRepo kafka.OutboxRepository
	if cfg.KafkaBroker != "" {
		outboxRepo = kafka.NewOutboxRepository(db)
	}

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb, logger)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, outboxRepo, rdb, cfg.SummaryCacheTTL, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)

	// --- Routes ---
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "HRMS Lite API",
		})
	})

	api := router.Group("/api")
	{
		employee.RegisterRoutes(api, employeeHandler, logger)
		attendance.RegisterRoutes(api, attendanceHandler, logger)
	}
}
