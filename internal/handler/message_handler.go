// Package handler provides the HTTP request handlers.
// This file handles chat message endpoints.
package handler

import (
	"juntos_server/internal/dto/request"
	"juntos_server/internal/infrastructure/middleware"
	"juntos_server/internal/service"
	"juntos_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// MessageHandler handles history reads and message publication over
// HTTP. The realtime path lives in the websocket gateway.
type MessageHandler struct {
	messageSvc service.MessageService
	groupSvc   service.GroupService
}

func NewMessageHandler(messageSvc service.MessageService, groupSvc service.GroupService) *MessageHandler {
	return &MessageHandler{
		messageSvc: messageSvc,
		groupSvc:   groupSvc,
	}
}

// requireMembership checks the in-memory view and, when that says no,
// refreshes it through ListMine before denying. The refresh covers the
// cold view after a restart.
func (h *MessageHandler) requireMembership(userUuid string, groupID uint) error {
	if h.groupSvc.IsMember(userUuid, groupID) {
		return nil
	}
	if _, err := h.groupSvc.ListMine(userUuid); err != nil {
		return err
	}
	if !h.groupSvc.IsMember(userUuid, groupID) {
		return errorx.New(errorx.CodeForbidden, "join the group to access its messages")
	}
	return nil
}

// History returns the message log of a group.
// GET /message/history?group_id=xxx
func (h *MessageHandler) History(c *gin.Context) {
	var req request.GroupQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userUuid := c.GetString(middleware.UserIDKey)
	if err := h.requireMembership(userUuid, req.GroupID); err != nil {
		HandleError(c, err)
		return
	}
	data, err := h.messageSvc.History(req.GroupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Send publishes a message to a group.
// POST /message/send
func (h *MessageHandler) Send(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userUuid := c.GetString(middleware.UserIDKey)
	if err := h.requireMembership(userUuid, req.GroupID); err != nil {
		HandleError(c, err)
		return
	}
	data, err := h.messageSvc.Send(userUuid, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
