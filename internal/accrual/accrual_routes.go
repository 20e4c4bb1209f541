package accrual

import (
	"go-ess/internal/middleware"
	"go-ess/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc, rbacService rbac.Service, logger *zap.Logger) {
	accruals := r.Group("/leave-accruals")
	accruals.Use(authMW)
	accruals.Use(middleware.ContextLogger(logger))
	{
		accruals.GET("", middleware.RBACAuthorize(rbacService, "leave_accrual", "read"), handler.GetAll)
		accruals.POST("/run",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "leave_accrual", "run"),
			handler.Run,
		)
	}
}
