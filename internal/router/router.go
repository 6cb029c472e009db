// Package router registers the HTTP routes.
// This file is the entry point aggregating the per-module route files.
package router

import (
	"net/http"

	"juntos_server/internal/handler"
	"juntos_server/internal/infrastructure/middleware"
	"juntos_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// Router wires handlers and middleware into the gin engine.
type Router struct {
	handlers *handler.Handlers
	roles    middleware.RoleResolver
}

// NewRouter creates the router aggregate.
func NewRouter(handlers *handler.Handlers, roles middleware.RoleResolver) *Router {
	return &Router{
		handlers: handlers,
		roles:    roles,
	}
}

// RegisterRoutes mounts every module. Public routes take no middleware;
// everything else sits behind the JWT gate, and the admin block behind
// the role gate on top of it.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterAuthRoutes(r)

	authed := r.Group("/", middleware.JWTAuth())
	rt.RegisterGroupRoutes(authed)
	rt.RegisterMessageRoutes(authed)
	rt.RegisterWebSocketRoutes(authed)
	rt.RegisterAdminRoutes(authed)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"code": errorx.CodeNotFound,
			"msg":  "route not found",
		})
	})
}
