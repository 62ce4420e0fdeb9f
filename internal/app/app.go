package app

import (
	"hrms-lite/internal/attendance"
	"hrms-lite/internal/config"
	"hrms-lite/internal/employee"
	"hrms-lite/internal/messaging/kafka"
	"hrms-lite/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) error {
	db, err := connection.ConnectGORMWithRetry(cfg.DB, 5)
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&employee.Employee{},
		&attendance.Attendance{},
		&kafka.OutboxEvent{},
	); err != nil {
		return err
	}
	logger.Info("database schema migrated")

	// Redis is optional: without it the summary endpoint just hits the
	// database every time.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			return err
		}
	}

	registerModules(router, db, rdb, cfg, logger)

	return nil
}
