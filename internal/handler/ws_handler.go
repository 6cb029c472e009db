// Package handler provides the HTTP request handlers.
// This file handles the websocket chat endpoint.
package handler

import (
	"juntos_server/internal/dto/request"
	"juntos_server/internal/gateway/ws"
	"juntos_server/internal/infrastructure/middleware"
	"juntos_server/internal/service"
	"juntos_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// WsHandler opens websocket chat sessions.
type WsHandler struct {
	gateway  *ws.Gateway
	groupSvc service.GroupService
}

func NewWsHandler(gateway *ws.Gateway, groupSvc service.GroupService) *WsHandler {
	return &WsHandler{
		gateway:  gateway,
		groupSvc: groupSvc,
	}
}

// Chat upgrades the connection into a live chat session on one group.
// GET /ws/chat?group_id=xxx
func (h *WsHandler) Chat(c *gin.Context) {
	var req request.GroupQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userUuid := c.GetString(middleware.UserIDKey)

	// Membership gate. A cold view is refreshed once before denying.
	if !h.groupSvc.IsMember(userUuid, req.GroupID) {
		if _, err := h.groupSvc.ListMine(userUuid); err != nil {
			HandleError(c, err)
			return
		}
		if !h.groupSvc.IsMember(userUuid, req.GroupID) {
			HandleError(c, errorx.New(errorx.CodeForbidden, "join the group to open its chat"))
			return
		}
	}

	h.gateway.Serve(c, userUuid, req.GroupID)
}
