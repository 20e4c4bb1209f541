package workflow

import (
	"go-ess/internal/middleware"
	"go-ess/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	authMW gin.HandlerFunc,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	workflows := r.Group("/workflows")
	workflows.Use(authMW)
	workflows.Use(middleware.ContextLogger(logger))
	{
		workflows.GET("", middleware.RBACAuthorize(rbacService, "workflow", "read"), h.GetAll)
		workflows.POST("", middleware.RBACAuthorize(rbacService, "workflow", "create"), h.Create)
		workflows.POST("/import", middleware.RBACAuthorize(rbacService, "workflow", "create"), h.Import)
		workflows.GET("/:id", middleware.RBACAuthorize(rbacService, "workflow", "read"), h.GetByID)
		workflows.PUT("/:id", middleware.RBACAuthorize(rbacService, "workflow", "update"), h.Update)
		workflows.DELETE("/:id", middleware.RBACAuthorize(rbacService, "workflow", "delete"), h.Delete)

		workflows.POST("/:id/steps", middleware.RBACAuthorize(rbacService, "workflow", "update"), h.AddStep)
		workflows.DELETE("/:id/steps/:step", middleware.RBACAuthorize(rbacService, "workflow", "update"), h.RemoveStep)
		workflows.POST("/:id/steps/:step/move", middleware.RBACAuthorize(rbacService, "workflow", "update"), h.MoveStep)
	}
}
