package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("", handler.GetAll)
		employees.GET("/:employee_id", handler.GetByEmployeeID)

		employees.POST("",
			middleware.RateLimitByIP(5, 10),
			handler.Create,
		)

		employees.DELETE("/:employee_id",
			middleware.RateLimitByIP(1, 3),
			handler.Delete,
		)
	}
}
