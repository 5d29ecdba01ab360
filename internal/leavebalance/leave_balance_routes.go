package leavebalance

import (
	"github.com/yashcpg/leave1/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	balances := r.Group("/LeaveBalance")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "leave_balance", "read"), handler.GetMine)
		balances.PUT("", middleware.RBACAuthorize(rbacService, "leave_balance", "allocate"), handler.Allocate)
	}
}
