package attendance

import (
	"hrms-lite/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.ContextLogger(logger))
	{
		// /summary before /:employee_id so the static route wins
		attendance.GET("/summary", handler.Summary)
		attendance.GET("/:employee_id", handler.ListForEmployee)

		attendance.POST("",
			middleware.RateLimitByIP(10, 20),
			handler.Mark,
		)
	}
}
