package dashboard

import (
	"github.com/yashcpg/leave1/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	dashboards := r.Group("/Dashboard")
	dashboards.Use(middleware.AuthMiddleware())
	{
		dashboards.GET("", middleware.RBACAuthorize(rbacService, "dashboard", "read"), handler.Get)
	}
}
