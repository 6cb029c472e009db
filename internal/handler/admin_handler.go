// Package handler provides the HTTP request handlers.
// This file handles role management and verification review endpoints.
package handler

import (
	"juntos_server/internal/dto/request"
	"juntos_server/internal/infrastructure/middleware"
	"juntos_server/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles verification review and role administration.
type AdminHandler struct {
	verifySvc service.VerifyService
	roleSvc   service.RoleService
}

func NewAdminHandler(verifySvc service.VerifyService, roleSvc service.RoleService) *AdminHandler {
	return &AdminHandler{
		verifySvc: verifySvc,
		roleSvc:   roleSvc,
	}
}

// MyRoles returns the resolved role set of the authenticated identity.
// GET /role/mine
func (h *AdminHandler) MyRoles(c *gin.Context) {
	userUuid := c.GetString(middleware.UserIDKey)
	data, err := h.roleSvc.RolesFor(userUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListPending lists unreviewed verification requests.
// GET /admin/verification/pending
func (h *AdminHandler) ListPending(c *gin.Context) {
	data, err := h.verifySvc.ListPending()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Approve verifies a record and grants the professional role.
// POST /admin/verification/approve
func (h *AdminHandler) Approve(c *gin.Context) {
	var req request.ApproveVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.verifySvc.Approve(req.RecordID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Reject removes a verification request.
// POST /admin/verification/reject
func (h *AdminHandler) Reject(c *gin.Context) {
	var req request.RejectVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.verifySvc.Reject(req.RecordID); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Reconciliation lists verified identities missing their role grant.
// GET /admin/verification/reconciliation
func (h *AdminHandler) Reconciliation(c *gin.Context) {
	data, err := h.verifySvc.ReconciliationReport()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CreateStaff provisions an account with an elevated role.
// POST /admin/staff
func (h *AdminHandler) CreateStaff(c *gin.Context) {
	var req request.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.verifySvc.CreateStaff(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GrantRole assigns a role to an identity.
// POST /admin/role/grant
func (h *AdminHandler) GrantRole(c *gin.Context) {
	var req request.GrantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roleSvc.Grant(req.UserUuid, req.Role); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RevokeRole removes a role from an identity.
// POST /admin/role/revoke
func (h *AdminHandler) RevokeRole(c *gin.Context) {
	var req request.RevokeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roleSvc.Revoke(req.UserUuid, req.Role); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
