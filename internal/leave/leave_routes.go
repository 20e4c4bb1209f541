package leave

import (
	"go-ess/internal/middleware"
	"go-ess/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authMW gin.HandlerFunc,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	leaves := r.Group("/leaves")
	leaves.Use(authMW)
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetByID)
		leaves.GET("/:id/actions", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetActions)
		leaves.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			handler.Create,
		)
		leaves.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Submit)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Reject)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Cancel)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), handler.Delete)
	}

	types := r.Group("/leave-types")
	types.Use(authMW)
	types.Use(middleware.ContextLogger(logger))
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetTypes)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetTypeByID)
		types.POST("", middleware.RBACAuthorize(rbacService, "leave_type", "create"), handler.CreateType)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "update"), handler.UpdateType)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "delete"), handler.DeleteType)
	}

	balances := r.Group("/leave-balances")
	balances.Use(authMW)
	balances.Use(middleware.ContextLogger(logger))
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetBalances)
	}
}
