// Package handler provides the HTTP request handlers.
// This file handles account endpoints.
package handler

import (
	"juntos_server/internal/dto/request"
	"juntos_server/internal/infrastructure/middleware"
	"juntos_server/internal/service"
	"juntos_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login and profile endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register creates an account.
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.authSvc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Login issues a token pair.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.authSvc.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Refresh rotates a refresh token.
// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.authSvc.Refresh(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Logout drops the refresh session of the authenticated identity.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userUuid := c.GetString(middleware.UserIDKey)
	if userUuid == "" {
		HandleError(c, errorx.ErrUnauthorized)
		return
	}
	if err := h.authSvc.Logout(userUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Me returns the authenticated identity's profile.
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userUuid := c.GetString(middleware.UserIDKey)
	data, err := h.authSvc.GetProfile(userUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateProfile renames the authenticated identity.
// POST /auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userUuid := c.GetString(middleware.UserIDKey)
	if err := h.authSvc.UpdateDisplayName(userUuid, req.Nome); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
