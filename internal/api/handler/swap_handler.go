package handler

import (
	"github.com/gin-gonic/gin"

	"fosms/backend/internal/dto"
	"fosms/backend/internal/service"
	"fosms/backend/pkg/response"
)

// SwapHandler 换班模块 HTTP 处理器
type SwapHandler struct {
	swapSvc service.SwapService
}

// NewSwapHandler 创建 SwapHandler
func NewSwapHandler(swapSvc service.SwapService) *SwapHandler {
	return &SwapHandler{swapSvc: swapSvc}
}

// Create 发起换班申请
// POST /api/v1/swaps
func (h *SwapHandler) Create(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.RequestSwapRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.swapSvc.Create(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, result)
}

// ListMine 我的换班申请
// GET /api/v1/swaps/my
func (h *SwapHandler) ListMine(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	items, err := h.swapSvc.ListMine(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, items)
}

// ListAll 全部换班申请
// GET /api/v1/swaps?status=PENDING
func (h *SwapHandler) ListAll(c *gin.Context) {
	items, err := h.swapSvc.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, items)
}

// Process 管理员处理换班申请
// PUT /api/v1/swaps/:id/process
func (h *SwapHandler) Process(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.ProcessSwapRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.swapSvc.Resolve(c.Request.Context(), session.UserID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}
