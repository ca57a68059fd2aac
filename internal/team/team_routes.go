package team

import (
	"go-workforce/internal/middleware"
	"go-workforce/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	teams := r.Group("/teams")
	teams.Use(middleware.AuthMiddleware())
	{
		teams.GET("", middleware.RBACAuthorize(rbacService, "team", "read"), handler.GetAll)
		teams.GET("/options", middleware.RBACAuthorize(rbacService, "team", "read"), handler.GetOptions)
		teams.GET("/:id", middleware.RBACAuthorize(rbacService, "team", "read"), handler.GetByID)

		teams.POST("", middleware.RBACAuthorize(rbacService, "team", "manage"), handler.Create)
		teams.PUT("/:id", middleware.RBACAuthorize(rbacService, "team", "manage"), handler.Update)
		teams.DELETE("/:id", middleware.RBACAuthorize(rbacService, "team", "manage"), handler.Delete)

		teams.POST("/:id/members/:userId", middleware.RBACAuthorize(rbacService, "team", "manage"), handler.AddMember)
		teams.DELETE("/:id/members/:userId", middleware.RBACAuthorize(rbacService, "team", "manage"), handler.RemoveMember)
		teams.POST("/:id/leader/:userId", middleware.RBACAuthorize(rbacService, "team", "manage"), handler.PromoteToLeader)
	}
}
