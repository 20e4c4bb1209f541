package app

import (
	"database/sql"

	"go-ess/internal/accrual"
	"go-ess/internal/attendance"
	"go-ess/internal/auth"
	"go-ess/internal/config"
	"go-ess/internal/department"
	"go-ess/internal/employee"
	"go-ess/internal/employeesalary"
	"go-ess/internal/leave"
	"go-ess/internal/loan"
	"go-ess/internal/messaging/kafka"
	"go-ess/internal/middleware"
	"go-ess/internal/notification"
	"go-ess/internal/payroll"
	"go-ess/internal/rbac"
	"go-ess/internal/rbac/infra"
	"go-ess/internal/shared/counter"
	"go-ess/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	accrualRepo := accrual.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	employeeSalaryRepo := employeesalary.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	loanRepo := loan.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	workflowRepo := workflow.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer("")
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Shared collaborators ---
	departmentService := department.NewService(db, departmentRepo, rdb, logger)
	directory := employee.NewDirectory(employeeRepo, departmentService)
	resolver := workflow.NewApproverResolver(directory)
	dispatcher := notification.NewDispatcher(
		notificationRepo,
		directory,
		notification.NewOutboxEmailSender(db, outboxRepo),
		logger,
	)

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService, employeeRepo, rdb, auth.Options{
		Secret:     cfg.Auth.Secret,
		AccessTTL:  cfg.Auth.AccessTTL,
		RefreshTTL: cfg.Auth.RefreshTTL,
	}, logger)
	accrualService := accrual.NewService(accrualRepo, employeeRepo, leaveRepo, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)
	employeeSalaryService := employeesalary.NewService(db, employeeSalaryRepo, logger)
	leaveService := leave.NewService(db, leaveRepo, workflowRepo, resolver, dispatcher, logger)
	leaveTypeService := leave.NewTypeService(leaveRepo, logger)
	loanService := loan.NewService(db, loanRepo, dispatcher, logger)
	loanProductService := loan.NewProductService(loanRepo, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	payrollService := payroll.NewService(
		db,
		payrollRepo,
		employeeRepo,
		employeeSalaryRepo,
		attendanceRepo,
		dispatcher,
		logger,
	)
	workflowService := workflow.NewService(db, workflowRepo, cfg.Workflow.SeedPath, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieOptions{
		Secure:     cfg.IsProduction(),
		AccessTTL:  cfg.Auth.AccessTTL,
		RefreshTTL: cfg.Auth.RefreshTTL,
	}, logger)
	accrualHandler := accrual.NewHandler(accrualService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	departmentHandler := department.NewHandler(departmentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	employeeSalaryHandler := employeesalary.NewHandler(employeeSalaryService, logger)
	leaveHandler := leave.NewHandler(leaveService, leaveTypeService, logger)
	loanHandler := loan.NewHandler(loanService, loanProductService, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)
	workflowHandler := workflow.NewHandler(workflowService, logger)

	authMW := middleware.AuthMiddleware(cfg.Auth.Secret, authService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMW)
		rbac.RegisterRoutes(api, rbacHandler, authMW)
		accrual.RegisterRoutes(api, accrualHandler, authMW, rbacService, logger)
		attendance.RegisterRoutes(api, attendanceHandler, authMW, rbacService, logger)
		department.RegisterRoutes(api, departmentHandler, authMW, rbacService, logger)
		employee.RegisterRoutes(api, employeeHandler, authMW, rbacService, logger)
		employeesalary.RegisterRoutes(api, employeeSalaryHandler, authMW, rbacService, logger)
		leave.RegisterRoutes(api, leaveHandler, authMW, rbacService, rdb, logger)
		loan.RegisterRoutes(api, loanHandler, authMW, rbacService, rdb, logger)
		notification.RegisterRoutes(api, notificationHandler, authMW, logger)
		payroll.RegisterRoutes(api, payrollHandler, authMW, rbacService, rdb, logger)
		workflow.RegisterRoutes(api, workflowHandler, authMW, rbacService, logger)
	}

	logger.Info("modules registered")
	return nil
}
