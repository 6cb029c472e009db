// Package router registers the HTTP routes.
// This file defines the account routes.
package router

import (
	"juntos_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers signup, login and profile routes. The
// credential endpoints are public; the profile endpoints are not.
func (rt *Router) RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", rt.handlers.Auth.Register) // create account
		authGroup.POST("/login", rt.handlers.Auth.Login)       // password login
		authGroup.POST("/refresh", rt.handlers.Auth.Refresh)   // rotate refresh token
	}

	profileGroup := r.Group("/auth", middleware.JWTAuth())
	{
		profileGroup.POST("/logout", rt.handlers.Auth.Logout)         // drop refresh session
		profileGroup.GET("/me", rt.handlers.Auth.Me)                  // own profile
		profileGroup.POST("/profile", rt.handlers.Auth.UpdateProfile) // rename
	}
}
