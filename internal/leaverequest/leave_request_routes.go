package leaverequest

import (
	"github.com/yashcpg/leave1/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	leaveRequests := r.Group("/LeaveRequest")
	leaveRequests.Use(middleware.AuthMiddleware())
	{
		leaveRequests.POST("/apply", middleware.RBACAuthorize(rbacService, "leave_request", "apply"), handler.Apply)
		leaveRequests.POST("/approve/:id", middleware.RBACAuthorize(rbacService, "leave_request", "approve"), handler.Decide)
		leaveRequests.GET("", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.GetMine)
		leaveRequests.GET("/team", middleware.RBACAuthorize(rbacService, "leave_request", "read_team"), handler.GetTeam)
		leaveRequests.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.GetByID)
	}
}
