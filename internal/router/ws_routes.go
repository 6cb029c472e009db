// Package router registers the HTTP routes.
// This file defines the websocket chat route.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes registers the live chat upgrade endpoint
// (authenticated).
func (rt *Router) RegisterWebSocketRoutes(rg *gin.RouterGroup) {
	wsGroup := rg.Group("/ws")
	{
		wsGroup.GET("/chat", rt.handlers.Ws.Chat) // history snapshot then live feed
	}
}
