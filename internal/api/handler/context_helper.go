package handler

import (
	"github.com/gin-gonic/gin"

	"fosms/backend/internal/api/middleware"
	"fosms/backend/pkg/response"
)

// MustGetSession 从 Gin 上下文中安全提取调用者 Session。
// 如果认证中间件未注入 Session，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetSession(c *gin.Context) (*middleware.Session, bool) {
	session, ok := middleware.SessionFrom(c)
	if !ok || session.UserID == "" {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return session, true
}
