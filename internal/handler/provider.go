// Package handler provides the HTTP request handlers.
// This file defines the handler aggregate and its constructor.
package handler

import (
	"juntos_server/internal/gateway/ws"
	"juntos_server/internal/service"
)

// Handlers aggregates all handler instances. The router reaches the
// handler layer through this aggregate only.
type Handlers struct {
	Auth    *AuthHandler
	Group   *GroupHandler
	Message *MessageHandler
	Admin   *AdminHandler
	Ws      *WsHandler
}

// NewHandlers builds the aggregate, wiring each handler to its services.
func NewHandlers(svc *service.Services, gateway *ws.Gateway) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(svc.Auth),
		Group:   NewGroupHandler(svc.Group),
		Message: NewMessageHandler(svc.Message, svc.Group),
		Admin:   NewAdminHandler(svc.Verify, svc.Role),
		Ws:      NewWsHandler(gateway, svc.Group),
	}
}
