package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fosms/backend/pkg/errors"
	"fosms/backend/pkg/response"
)

// respondError 业务错误按 Kind 输出；其他错误记入 c.Errors 交由日志中间件记录，对外统一 500
func respondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		response.Fail(c, appErr)
		return
	}
	_ = c.Error(err)
	response.InternalError(c)
}

// bindJSON 绑定并校验请求体，失败时已写入响应
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			return false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return false
	}
	return true
}
