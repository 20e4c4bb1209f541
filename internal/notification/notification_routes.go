package notification

import (
	"go-ess/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes exposes the caller's own inbox, so no RBAC check applies.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMW gin.HandlerFunc, logger *zap.Logger) {
	notifications := r.Group("/notifications")
	notifications.Use(authMW)
	notifications.Use(middleware.ContextLogger(logger))
	{
		notifications.GET("", h.ListMine)
		notifications.POST("/read-all", h.MarkAllRead)
		notifications.POST("/:id/read", h.MarkRead)
	}
}
