package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fosms/backend/internal/dto"
	"fosms/backend/internal/service"
	"fosms/backend/pkg/response"
)

// ShiftHandler 排班模块 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// Assign 管理员排班
// POST /api/v1/shifts
func (h *ShiftHandler) Assign(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.AssignShiftRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.shiftSvc.Assign(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, result)
}

// ListMine 我的排班
// GET /api/v1/shifts/my
func (h *ShiftHandler) ListMine(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	items, err := h.shiftSvc.ListMine(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, items)
}

// Calendar 我的排班（iCalendar 订阅）
// GET /api/v1/shifts/my/calendar.ics
func (h *ShiftHandler) Calendar(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	data, err := h.shiftSvc.ExportCalendar(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shifts.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// ListAll 全部排班（所有登录用户可见）
// GET /api/v1/shifts?from=2024-03-01&to=2024-03-31
func (h *ShiftHandler) ListAll(c *gin.Context) {
	items, err := h.shiftSvc.ListAll(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, items)
}
