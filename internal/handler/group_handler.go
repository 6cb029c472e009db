// Package handler provides the HTTP request handlers.
// This file handles support group endpoints.
package handler

import (
	"juntos_server/internal/dto/request"
	"juntos_server/internal/infrastructure/middleware"
	"juntos_server/internal/service"

	"github.com/gin-gonic/gin"
)

// GroupHandler handles group discovery and membership endpoints.
type GroupHandler struct {
	groupSvc service.GroupService
}

func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// ListAll lists every group, newest first.
// GET /group/list
func (h *GroupHandler) ListAll(c *gin.Context) {
	data, err := h.groupSvc.ListAll()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListMine lists the groups the authenticated identity belongs to.
// GET /group/mine
func (h *GroupHandler) ListMine(c *gin.Context) {
	userUuid := c.GetString(middleware.UserIDKey)
	data, err := h.groupSvc.ListMine(userUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Create creates a group and enrolls the creator.
// POST /group/create
func (h *GroupHandler) Create(c *gin.Context) {
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userUuid := c.GetString(middleware.UserIDKey)
	data, err := h.groupSvc.Create(userUuid, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Update edits group metadata, owner only.
// POST /group/update
func (h *GroupHandler) Update(c *gin.Context) {
	var req request.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userUuid := c.GetString(middleware.UserIDKey)
	if err := h.groupSvc.Update(userUuid, req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Join enrolls the authenticated identity in a group.
// POST /group/join
func (h *GroupHandler) Join(c *gin.Context) {
	var req request.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userUuid := c.GetString(middleware.UserIDKey)
	data, err := h.groupSvc.Join(userUuid, req.GroupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Leave removes the authenticated identity from a group.
// POST /group/leave
func (h *GroupHandler) Leave(c *gin.Context) {
	var req request.LeaveGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userUuid := c.GetString(middleware.UserIDKey)
	if err := h.groupSvc.Leave(userUuid, req.GroupID); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Members lists the members of a group with their profiles.
// GET /group/members?group_id=xxx
func (h *GroupHandler) Members(c *gin.Context) {
	var req request.GroupQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.ListMembers(req.GroupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// IsMember reports membership of the authenticated identity.
// GET /group/isMember?group_id=xxx
func (h *GroupHandler) IsMember(c *gin.Context) {
	var req request.GroupQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userUuid := c.GetString(middleware.UserIDKey)
	HandleSuccess(c, h.groupSvc.IsMember(userUuid, req.GroupID))
}
