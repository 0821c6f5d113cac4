package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/service"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Logout 注销当前 Token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := MustGetUserID(c); !ok {
		return
	}

	exp, _ := c.Get("token_exp")
	expiresAt, _ := exp.(time.Time)
	if err := h.authSvc.Logout(c.Request.Context(), c.GetString("token_jti"), expiresAt); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetCurrentUser 当前用户身份与角色
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	me, err := h.authSvc.GetCurrentUser(c.Request.Context(), callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, me)
}
