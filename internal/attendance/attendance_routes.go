package attendance

import (
	"go-ess/internal/middleware"
	"go-ess/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc, rbacService rbac.Service, logger *zap.Logger) {
	attendances := r.Group("/attendances")
	attendances.Use(authMW)
	attendances.Use(middleware.ContextLogger(logger))
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetAll)
		attendances.POST("/clock-in",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			handler.ClockIn,
		)
		attendances.POST("/clock-out",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			handler.ClockOut,
		)
		attendances.POST("/mark-absent", middleware.RBACAuthorize(rbacService, "attendance", "manage"), handler.MarkAbsent)
	}
}
