// Package router registers the HTTP routes.
// This file defines the support group routes.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterGroupRoutes registers group discovery and membership routes
// (authenticated).
func (rt *Router) RegisterGroupRoutes(rg *gin.RouterGroup) {
	groupGroup := rg.Group("/group")
	{
		groupGroup.GET("/list", rt.handlers.Group.ListAll)       // all groups, newest first
		groupGroup.GET("/mine", rt.handlers.Group.ListMine)      // my groups
		groupGroup.POST("/create", rt.handlers.Group.Create)     // create and enroll creator
		groupGroup.POST("/update", rt.handlers.Group.Update)     // owner metadata edit
		groupGroup.POST("/join", rt.handlers.Group.Join)         // enroll
		groupGroup.POST("/leave", rt.handlers.Group.Leave)       // withdraw
		groupGroup.GET("/members", rt.handlers.Group.Members)    // enriched member list
		groupGroup.GET("/isMember", rt.handlers.Group.IsMember)  // in-memory membership check
	}
}
