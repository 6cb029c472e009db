// Package router registers the HTTP routes.
// This file defines the role and verification review routes.
package router

import (
	"juntos_server/internal/infrastructure/middleware"
	roleenum "juntos_server/pkg/enum/role"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes registers role introspection for every identity
// and the admin-gated review block.
func (rt *Router) RegisterAdminRoutes(rg *gin.RouterGroup) {
	roleGroup := rg.Group("/role")
	{
		roleGroup.GET("/mine", rt.handlers.Admin.MyRoles) // resolved role set
	}

	adminGroup := rg.Group("/admin", middleware.RequireRole(rt.roles, roleenum.Admin))
	{
		adminGroup.GET("/verification/pending", rt.handlers.Admin.ListPending)
		adminGroup.POST("/verification/approve", rt.handlers.Admin.Approve)
		adminGroup.POST("/verification/reject", rt.handlers.Admin.Reject)
		adminGroup.GET("/verification/reconciliation", rt.handlers.Admin.Reconciliation)

		adminGroup.POST("/staff", rt.handlers.Admin.CreateStaff)
		adminGroup.POST("/role/grant", rt.handlers.Admin.GrantRole)
		adminGroup.POST("/role/revoke", rt.handlers.Admin.RevokeRole)
	}
}
