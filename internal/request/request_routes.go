package request

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
	requests := r.Group("/requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("", middleware.RBACAuthorize(rbacService, "request", "create"), handler.Create)
		requests.POST("/for/:userId", middleware.RBACAuthorize(rbacService, "request", "manage"), handler.CreateFor)

		requests.GET("/mine", middleware.RBACAuthorize(rbacService, "request", "read"), handler.ListMine)
		requests.GET("/awaiting", middleware.RBACAuthorize(rbacService, "request", "read"), handler.ListAwaiting)
		requests.GET("/by-user/:userId", middleware.RBACAuthorize(rbacService, "request", "manage"), handler.ListByUser)
		requests.GET("/by-status/:status", middleware.RBACAuthorize(rbacService, "request", "manage"), handler.ListByStatus)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetByID)

		requests.PUT("/:id", middleware.RBACAuthorize(rbacService, "request", "update"), handler.Update)
		requests.DELETE("/:id", middleware.RBACAuthorize(rbacService, "request", "update"), handler.Delete)

		requests.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "request", "update"), handler.Submit)
		requests.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "request", "decide"), handler.Approve)
		requests.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "request", "decide"), handler.Reject)
	}
}
