// Package router registers the HTTP routes.
// This file defines the chat message routes.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes registers history and send routes
// (authenticated, membership checked in the handler).
func (rt *Router) RegisterMessageRoutes(rg *gin.RouterGroup) {
	messageGroup := rg.Group("/message")
	{
		messageGroup.GET("/history", rt.handlers.Message.History) // full log, sent-at ascending
		messageGroup.POST("/send", rt.handlers.Message.Send)      // persist and broadcast
	}
}
