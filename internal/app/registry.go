package app

import (
	"database/sql"
	"path/filepath"

	"github.com/yashcpg/leave1/internal/auth"
	"github.com/yashcpg/leave1/internal/dashboard"
	"github.com/yashcpg/leave1/internal/employee"
	"github.com/yashcpg/leave1/internal/leavebalance"
	"github.com/yashcpg/leave1/internal/leaverequest"
	"github.com/yashcpg/leave1/internal/messaging/kafka"
	"github.com/yashcpg/leave1/internal/notification"
	"github.com/yashcpg/leave1/internal/rbac"
	"github.com/yashcpg/leave1/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(
		filepath.Join("internal", "rbac", "infra", "model.conf"),
		filepath.Join("internal", "rbac", "infra", "policy.csv"),
	)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	dashboardInvalidator := dashboard.NewCacheInvalidator(rdb)
	authService := auth.NewService(employeeRepo)
	leaveRequestService := leaverequest.NewServiceWithOutbox(
		db, leaveRequestRepo, leaveBalanceRepo, outboxRepo, dashboardInvalidator,
	)
	leaveBalanceService := leavebalance.NewService(db, leaveBalanceRepo, employeeRepo)
	notificationService := notification.NewService(notificationRepo)
	dashboardService := dashboard.NewService(leaveRequestRepo, leaveBalanceRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)
	leaveBalanceHandler := leavebalance.NewHandler(leaveBalanceService)
	notificationHandler := notification.NewHandler(notificationService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rbacService)
		leavebalance.RegisterRoutes(api, leaveBalanceHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService)
	}

	return nil
}
