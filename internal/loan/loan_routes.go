package loan

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
	loans := r.Group("/loans")
	loans.Use(authMW)
	loans.Use(middleware.ContextLogger(logger))
	{
		loans.GET("", middleware.RBACAuthorize(rbacService, "loan", "read"), handler.GetAll)
		loans.GET("/:id", middleware.RBACAuthorize(rbacService, "loan", "read"), handler.GetByID)
		loans.GET("/:id/repayments", middleware.RBACAuthorize(rbacService, "loan", "read"), handler.ListRepayments)
		loans.POST("/quote", middleware.RBACAuthorize(rbacService, "loan", "create"), handler.Quote)
		loans.POST("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "loan", "create"),
			handler.Apply,
		)
		loans.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "loan", "create"), handler.Submit)
		loans.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "loan", "approve"), handler.Approve)
		loans.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "loan", "approve"), handler.Reject)
		loans.POST("/:id/disburse",
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "loan", "disburse"),
			handler.Disburse,
		)
		loans.POST("/:id/repayments",
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "loan", "repay"),
			handler.RecordRepayment,
		)
	}

	products := r.Group("/loan-products")
	products.Use(authMW)
	products.Use(middleware.ContextLogger(logger))
	{
		products.GET("", middleware.RBACAuthorize(rbacService, "loan_product", "read"), handler.GetProducts)
		products.GET("/:id", middleware.RBACAuthorize(rbacService, "loan_product", "read"), handler.GetProductByID)
		products.POST("", middleware.RBACAuthorize(rbacService, "loan_product", "create"), handler.CreateProduct)
		products.PUT("/:id", middleware.RBACAuthorize(rbacService, "loan_product", "update"), handler.UpdateProduct)
		products.DELETE("/:id", middleware.RBACAuthorize(rbacService, "loan_product", "delete"), handler.DeleteProduct)
	}
}
